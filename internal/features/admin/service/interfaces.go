package service

import (
	"context"
	"io"

	"storefront-gateway/internal/platform/backend"
)

// Backend is the admin slice of the storefront API: catalog CRUD,
// order management, settings and branding.
type Backend interface {
	CreateProduct(ctx context.Context, form *backend.Form) error
	UpdateProduct(ctx context.Context, id string, form *backend.Form) error
	DeleteProduct(ctx context.Context, id string) error

	CreateBundle(ctx context.Context, form *backend.Form) error
	UpdateBundle(ctx context.Context, id string, form *backend.Form) error
	DeleteBundle(ctx context.Context, id string) error

	CreateWishlistItem(ctx context.Context, item *backend.WishlistItem) error
	UpdateWishlistItem(ctx context.Context, id string, item *backend.WishlistItem) error
	DeleteWishlistItem(ctx context.Context, id string) error

	GetAdminOrders(ctx context.Context) ([]backend.Order, error)
	GetOrderDetail(ctx context.Context, id string) (*backend.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error

	SendSupportMessage(ctx context.Context, msg *backend.SendSupportMessage) error

	GetPaymentSettings(ctx context.Context) (*backend.PaymentSettings, error)
	UpdatePaymentSettings(ctx context.Context, settings *backend.PaymentSettings) error
	UpdateBranding(ctx context.Context, form *backend.Form) (*backend.Branding, error)
	Upload(ctx context.Context, name string, content io.Reader) (string, error)
}
