package models

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"storefront-gateway/internal/platform/backend"
)

// Order types carried in the checkout context.
const (
	TypeProduct     = "product"
	TypeBundle      = "bundle"
	TypeCustomVideo = "custom-video"
	TypeVideoCall   = "video-call"
	TypeRating      = "rating"
	TypeDonation    = "donation"
	TypeVIP         = "vip"
)

// Context is the inter-step checkout state. It travels exclusively in
// the URL query string so every step stays independently loadable.
type Context struct {
	Type     string            `json:"type"`
	ID       string            `json:"id,omitempty"`
	Price    float64           `json:"price"`
	Shipping *backend.Shipping `json:"shipping,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// BackendOrderType maps the context type onto the upstream enum.
func (c Context) BackendOrderType() string {
	switch c.Type {
	case TypeProduct:
		return "PRODUCT"
	case TypeBundle:
		return "BUNDLE"
	case TypeVIP:
		return "VIP"
	case TypeCustomVideo:
		return "CUSTOM_VIDEO"
	case TypeVideoCall:
		return "VIDEO_CALL"
	case TypeRating:
		return "RATING"
	case TypeDonation:
		return "DONATION"
	default:
		return "PRODUCT"
	}
}

// Validate checks the minimum the payment step needs: a type, and an id
// for everything except donations.
func (c Context) Validate() error {
	switch c.Type {
	case TypeProduct, TypeBundle, TypeCustomVideo, TypeVideoCall, TypeRating, TypeDonation, TypeVIP:
	default:
		return fmt.Errorf("unknown order type %q", c.Type)
	}
	if c.Type != TypeDonation && c.ID == "" {
		return fmt.Errorf("order type %s requires an item id", c.Type)
	}
	return nil
}

// Items renders the single order line the upstream expects.
func (c Context) Items() []backend.OrderItem {
	id := c.ID
	if c.Type == TypeDonation {
		id = "DONATION"
	}
	return []backend.OrderItem{{
		ID:       id,
		Type:     c.Type,
		Quantity: 1,
		Price:    c.Price,
	}}
}

// Query serializes the context back into its URL form. Shipping is
// JSON-encoded; message appears only when non-empty.
func (c Context) Query() url.Values {
	values := url.Values{}
	values.Set("type", c.Type)
	if c.ID != "" {
		values.Set("id", c.ID)
	}
	values.Set("price", FormatPrice(c.Price))
	if c.Shipping != nil {
		if encoded, err := json.Marshal(c.Shipping); err == nil {
			values.Set("shipping", string(encoded))
		}
	}
	if c.Message != "" {
		values.Set("message", c.Message)
	}
	return values
}

// PaymentRoute is the method-selection URL for this context.
func (c Context) PaymentRoute() string {
	return "/payment?" + c.Query().Encode()
}

// ParseContext reads a context out of request query values.
func ParseContext(values url.Values) (Context, error) {
	ctx := Context{
		Type:    values.Get("type"),
		ID:      values.Get("id"),
		Message: values.Get("message"),
	}

	if raw := values.Get("price"); raw != "" {
		price, err := ParsePrice(raw)
		if err != nil {
			return Context{}, fmt.Errorf("invalid price %q: %w", raw, err)
		}
		ctx.Price = price
	}

	if raw := values.Get("shipping"); raw != "" {
		var shipping backend.Shipping
		if err := json.Unmarshal([]byte(raw), &shipping); err != nil {
			return Context{}, fmt.Errorf("invalid shipping payload: %w", err)
		}
		ctx.Shipping = &shipping
	}

	if err := ctx.Validate(); err != nil {
		return Context{}, err
	}
	return ctx, nil
}

// ParsePrice parses a user-facing amount, tolerating a trailing currency
// symbol ("25€" → 25).
func ParsePrice(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimSuffix(cleaned, "€")
	cleaned = strings.TrimSuffix(cleaned, "$")
	cleaned = strings.TrimSpace(cleaned)
	return strconv.ParseFloat(cleaned, 64)
}

// FormatPrice renders an amount without a trailing zero fraction.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
