package service

import (
	"context"
	"fmt"

	apperrors "storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/features/checkout/models"
	"storefront-gateway/internal/platform/backend"
)

// Summary is the item recap shown above the shipping form.
type Summary struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

type Backend interface {
	GetProduct(ctx context.Context, id string) (*backend.Product, error)
	GetBundle(ctx context.Context, id string) (*backend.Bundle, error)
}

type CheckoutService interface {
	// ItemSummary loads the purchasable the checkout was opened for.
	ItemSummary(ctx context.Context, orderType, id string) (*Summary, error)
	// Submit attaches shipping data to the context and returns the
	// payment-selection route. No order is created here: order creation
	// is deferred to the payment step so abandoned checkouts leave
	// nothing behind.
	Submit(ctx context.Context, checkout models.Context, shipping backend.Shipping) (string, error)
}

type checkoutService struct {
	client Backend
}

func NewCheckoutService(client Backend) CheckoutService {
	return &checkoutService{client: client}
}

func (s *checkoutService) ItemSummary(ctx context.Context, orderType, id string) (*Summary, error) {
	switch orderType {
	case models.TypeProduct:
		product, err := s.client.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		return &Summary{Name: product.Name, Price: product.Price, Image: product.Image}, nil
	case models.TypeBundle:
		bundle, err := s.client.GetBundle(ctx, id)
		if err != nil {
			return nil, err
		}
		return &Summary{Name: bundle.Name, Price: bundle.Price, Image: bundle.Image}, nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeBadRequest, fmt.Sprintf("No item summary for order type %q", orderType))
	}
}

func (s *checkoutService) Submit(ctx context.Context, checkout models.Context, shipping backend.Shipping) (string, error) {
	if err := checkout.Validate(); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid order parameters")
	}

	if checkout.Price == 0 {
		summary, err := s.ItemSummary(ctx, checkout.Type, checkout.ID)
		if err != nil {
			return "", err
		}
		checkout.Price = summary.Price
	}

	checkout.Shipping = &shipping
	return checkout.PaymentRoute(), nil
}
