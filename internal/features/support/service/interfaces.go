package service

import (
	"context"
	"io"
	"time"

	"storefront-gateway/internal/platform/backend"
)

// Backend is the support slice of the storefront API.
type Backend interface {
	GetSupportChats(ctx context.Context) ([]backend.SupportChat, error)
	GetSupportMessages(ctx context.Context, userID string) ([]backend.SupportMessage, error)
	SendSupportMessage(ctx context.Context, msg *backend.SendSupportMessage) error
	Upload(ctx context.Context, name string, content io.Reader) (string, error)
}

// Snapshots is the store the pollers publish into and the inbox reads
// from.
type Snapshots interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
