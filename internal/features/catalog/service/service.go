package service

import (
	"context"
	"time"

	"storefront-gateway/internal/common/cache"
	apperrors "storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/logger"
	checkoutmodels "storefront-gateway/internal/features/checkout/models"
	"storefront-gateway/internal/platform/backend"
)

const brandingCacheTTL = 5 * time.Minute

// Home is the storefront landing payload.
type Home struct {
	Branding *backend.Branding `json:"branding"`
	Products []backend.Product `json:"products"`
	Bundles  []backend.Bundle  `json:"bundles"`
}

// Donation is a started wishlist donation: the payment route it leads to.
type Donation struct {
	Item   *backend.WishlistItem `json:"item"`
	Amount float64               `json:"amount"`
	Next   string                `json:"next"`
}

type CatalogService interface {
	Home(ctx context.Context) (*Home, error)
	Branding(ctx context.Context) (*backend.Branding, error)
	Products(ctx context.Context) ([]backend.Product, error)
	Product(ctx context.Context, id string) (*backend.Product, error)
	Bundles(ctx context.Context) ([]backend.Bundle, error)
	Bundle(ctx context.Context, id string) (*backend.Bundle, error)
	Wishlist(ctx context.Context) ([]backend.WishlistItem, error)
	WishlistItem(ctx context.Context, id string) (*backend.WishlistItem, error)
	StartDonation(ctx context.Context, itemID, rawAmount, message string) (*Donation, error)
}

type catalogService struct {
	client Backend
	cache  *cache.Service
}

func NewCatalogService(client Backend, cacheService *cache.Service) CatalogService {
	return &catalogService{client: client, cache: cacheService}
}

// Home loads branding, products and bundles for the landing screen. A
// missing branding record is not fatal; the rest of the page still
// renders.
func (s *catalogService) Home(ctx context.Context) (*Home, error) {
	branding, err := s.Branding(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load branding for home")
		branding = &backend.Branding{}
	}

	products, err := s.client.GetProducts(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError("products", err)
	}
	bundles, err := s.client.GetBundles(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError("bundles", err)
	}

	return &Home{Branding: branding, Products: products, Bundles: bundles}, nil
}

func (s *catalogService) Branding(ctx context.Context) (*backend.Branding, error) {
	var branding backend.Branding
	err := s.cache.GetOrSet(ctx, "catalog:branding", &branding, brandingCacheTTL, func() (interface{}, error) {
		return s.client.GetBranding(ctx)
	})
	if err != nil {
		return nil, apperrors.NewUpstreamError("branding", err)
	}
	return &branding, nil
}

func (s *catalogService) Products(ctx context.Context) ([]backend.Product, error) {
	products, err := s.client.GetProducts(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError("products", err)
	}
	return products, nil
}

func (s *catalogService) Product(ctx context.Context, id string) (*backend.Product, error) {
	product, err := s.client.GetProduct(ctx, id)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("product", id)
		}
		return nil, apperrors.NewUpstreamError("product", err)
	}
	return product, nil
}

func (s *catalogService) Bundles(ctx context.Context) ([]backend.Bundle, error) {
	bundles, err := s.client.GetBundles(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError("bundles", err)
	}
	return bundles, nil
}

func (s *catalogService) Bundle(ctx context.Context, id string) (*backend.Bundle, error) {
	bundle, err := s.client.GetBundle(ctx, id)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("bundle", id)
		}
		return nil, apperrors.NewUpstreamError("bundle", err)
	}
	return bundle, nil
}

func (s *catalogService) Wishlist(ctx context.Context) ([]backend.WishlistItem, error) {
	items, err := s.client.GetWishlist(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError("wishlist", err)
	}
	return items, nil
}

func (s *catalogService) WishlistItem(ctx context.Context, id string) (*backend.WishlistItem, error) {
	item, err := s.client.GetWishlistItem(ctx, id)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("wishlist item", id)
		}
		return nil, apperrors.NewUpstreamError("wishlist item", err)
	}
	return item, nil
}

// StartDonation turns a wishlist donation into a payment route. The
// amount is user-typed and may carry a currency suffix; when absent the
// item price is used.
func (s *catalogService) StartDonation(ctx context.Context, itemID, rawAmount, message string) (*Donation, error) {
	item, err := s.WishlistItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var amount float64
	switch {
	case rawAmount != "":
		amount, err = checkoutmodels.ParsePrice(rawAmount)
		if err != nil || amount <= 0 {
			return nil, apperrors.New(apperrors.ErrCodeBadRequest, "Invalid donation amount")
		}
	case item.Price != nil:
		amount = *item.Price
	default:
		return nil, apperrors.New(apperrors.ErrCodeBadRequest, "Donation amount is required")
	}

	route := checkoutmodels.Context{
		Type:    checkoutmodels.TypeDonation,
		Price:   amount,
		Message: message,
	}.PaymentRoute()

	return &Donation{Item: item, Amount: amount, Next: route}, nil
}
