package service

import (
	"context"
	"io"
	"time"

	"storefront-gateway/internal/platform/backend"
)

// Locks is the in-flight guard the dispatcher takes before creating an
// order.
type Locks interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// Backend is the slice of the storefront client the payment flows use.
type Backend interface {
	CreateOrder(ctx context.Context, req *backend.CreateOrderRequest) (*backend.Order, error)
	CreateStarsOrder(ctx context.Context, req *backend.CreateStarsOrderRequest) (*backend.StarsOrder, error)
	GetOrderDetail(ctx context.Context, id string) (*backend.Order, error)
	UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error
	AttachScreenshot(ctx context.Context, id, filename string, content io.Reader) error
	AttachRatingPhoto(ctx context.Context, id, filename string, content io.Reader) error
	GetPaymentSettings(ctx context.Context) (*backend.PaymentSettings, error)
}
