package service

import (
	"context"

	"storefront-gateway/internal/platform/backend"
)

// Backend is the catalog slice of the storefront API.
type Backend interface {
	GetProducts(ctx context.Context) ([]backend.Product, error)
	GetProduct(ctx context.Context, id string) (*backend.Product, error)
	GetBundles(ctx context.Context) ([]backend.Bundle, error)
	GetBundle(ctx context.Context, id string) (*backend.Bundle, error)
	GetWishlist(ctx context.Context) ([]backend.WishlistItem, error)
	GetWishlistItem(ctx context.Context, id string) (*backend.WishlistItem, error)
	GetBranding(ctx context.Context) (*backend.Branding, error)
}
