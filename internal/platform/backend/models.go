package backend

import "encoding/json"

// Wire types as served by the storefront backend. All entities are owned
// upstream; the gateway only holds transient copies.

type User struct {
	ID         string `json:"id"`
	TelegramID string `json:"telegramId"`
	FirstName  string `json:"firstName"`
	Username   string `json:"username"`
	PhotoURL   string `json:"photoUrl,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

type BundleMedia struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Bundle struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       float64         `json:"price"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Images      []BundleMedia   `json:"images,omitempty"`
	Videos      []BundleMedia   `json:"videos,omitempty"`
	Exclusive   bool            `json:"exclusive"`
	Content     json.RawMessage `json:"content,omitempty"`
}

type WishlistItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       *float64 `json:"price,omitempty"`
	Image       string   `json:"image,omitempty"`
	Link        string   `json:"link,omitempty"`
	Description string   `json:"description,omitempty"`
}

// wishlistItemEnvelope mirrors the detail endpoint shape {"wishlist": {...}}.
type wishlistItemEnvelope struct {
	Wishlist WishlistItem `json:"wishlist"`
}

type OrderItem struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Name     string  `json:"name,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Shipping struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`
	Country   string `json:"country,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	TelegramID      string          `json:"telegramId,omitempty"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentMethod   string          `json:"paymentMethod"`
	OrderType       string          `json:"orderType"`
	TotalAmount     float64         `json:"totalAmount"`
	Items           []OrderItem     `json:"items,omitempty"`
	Shipping        *Shipping       `json:"shipping,omitempty"`
	DonationMessage string          `json:"donationMessage,omitempty"`
	Screenshot      string          `json:"screenshot,omitempty"`
	RatingPhoto     string          `json:"ratingPhoto,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
}

// CreateOrderRequest is the POST /orders payload.
type CreateOrderRequest struct {
	UserID          string      `json:"userId"`
	TelegramID      string      `json:"telegramId"`
	FirstName       string      `json:"firstName,omitempty"`
	Username        string      `json:"username,omitempty"`
	OrderType       string      `json:"orderType"`
	Items           []OrderItem `json:"items"`
	PaymentMethod   string      `json:"paymentMethod"`
	Shipping        *Shipping   `json:"shipping,omitempty"`
	DonationMessage string      `json:"donationMessage,omitempty"`
	IdempotencyKey  string      `json:"idempotencyKey,omitempty"`
}

// CreateStarsOrderRequest is the POST /orders/stars payload. The upstream
// creates the order and the Telegram invoice in one transaction.
type CreateStarsOrderRequest struct {
	UserID          string      `json:"userId"`
	TelegramID      string      `json:"telegramId"`
	OrderType       string      `json:"orderType"`
	Items           []OrderItem `json:"items"`
	Shipping        *Shipping   `json:"shipping,omitempty"`
	DonationMessage string      `json:"donationMessage,omitempty"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	// Amount is in Stars minor units, i.e. stars*100.
	Amount int `json:"amount"`
}

type StarsOrder struct {
	InvoiceURL string `json:"invoice_url"`
	OrderID    string `json:"order_id"`
}

// PaymentSettings holds the manual payment rails shown on the
// confirmation pages.
type PaymentSettings struct {
	USDTAddress string `json:"usdtAddress"`
	PayPalLink  string `json:"paypalLink"`
}

// Branding is the storefront profile record (banner, logo, contact link).
type Branding struct {
	Name   string `json:"name,omitempty"`
	Banner string `json:"banner,omitempty"`
	Logo   string `json:"logo,omitempty"`
	TgLink string `json:"tgLink,omitempty"`
	Link   string `json:"link,omitempty"`
}

// brandingEnvelope mirrors the GET /girl shape {"girl": {...}}.
type brandingEnvelope struct {
	Girl Branding `json:"girl"`
}

type SupportChat struct {
	UserID      string `json:"userId"`
	Username    string `json:"username,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastMessage string `json:"lastMessage,omitempty"`
	UnreadCount int    `json:"unreadCount,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type SupportMessage struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Message     string `json:"message"`
	MediaURL    string `json:"mediaUrl,omitempty"`
	MediaType   string `json:"mediaType,omitempty"`
	IsFromAdmin bool   `json:"isFromAdmin"`
	CreatedAt   string `json:"createdAt"`
}

// SendSupportMessage is the POST /support/send payload. OrderID is
// optional and links the message to an order.
type SendSupportMessage struct {
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	MediaURL  string `json:"mediaUrl,omitempty"`
	MediaType string `json:"mediaType,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
}

type uploadResponse struct {
	URL string `json:"url"`
}
