package service

import (
	"context"
	"time"

	"storefront-gateway/internal/platform/backend"
)

// Backend is the slice of the storefront client the identity feature uses.
type Backend interface {
	RegisterUser(ctx context.Context, telegramID, firstName, username string) (*backend.User, error)
	GetUser(ctx context.Context, telegramID string) (*backend.User, error)
	UpdateProfile(ctx context.Context, telegramID string, phone, email string) (*backend.User, error)
}

// Store is the slice of the cache the identity feature uses.
type Store interface {
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
