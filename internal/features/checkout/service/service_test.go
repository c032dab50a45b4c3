package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-gateway/internal/features/checkout/models"
	"storefront-gateway/internal/platform/backend"
)

type fakeCatalog struct {
	product *backend.Product
	bundle  *backend.Bundle
}

func (f *fakeCatalog) GetProduct(context.Context, string) (*backend.Product, error) {
	return f.product, nil
}

func (f *fakeCatalog) GetBundle(context.Context, string) (*backend.Bundle, error) {
	return f.bundle, nil
}

func TestItemSummary(t *testing.T) {
	s := NewCheckoutService(&fakeCatalog{
		product: &backend.Product{ID: "p1", Name: "Print", Price: 30, Image: "p.png"},
		bundle:  &backend.Bundle{ID: "b1", Name: "Set", Price: 99},
	})

	summary, err := s.ItemSummary(context.Background(), models.TypeProduct, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Print", summary.Name)
	assert.Equal(t, 30.0, summary.Price)

	summary, err = s.ItemSummary(context.Background(), models.TypeBundle, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Set", summary.Name)

	_, err = s.ItemSummary(context.Background(), models.TypeDonation, "")
	assert.Error(t, err)
}

func TestSubmitCreatesNoOrderAndRoutesToPayment(t *testing.T) {
	s := NewCheckoutService(&fakeCatalog{
		product: &backend.Product{ID: "p1", Name: "Print", Price: 30},
	})

	checkout := models.Context{Type: models.TypeProduct, ID: "p1", Price: 30}
	shipping := backend.Shipping{FirstName: "Ann", LastName: "Lee", Address: "1 Main St", City: "Berlin", ZipCode: "10115", Country: "DE"}

	route, err := s.Submit(context.Background(), checkout, shipping)
	require.NoError(t, err)

	parsed, err := url.Parse(route)
	require.NoError(t, err)
	assert.Equal(t, "/payment", parsed.Path)
	assert.Equal(t, "30", parsed.Query().Get("price"))
	assert.NotEmpty(t, parsed.Query().Get("shipping"))
}

func TestSubmitFillsMissingPriceFromCatalog(t *testing.T) {
	s := NewCheckoutService(&fakeCatalog{
		product: &backend.Product{ID: "p1", Name: "Print", Price: 42},
	})

	route, err := s.Submit(context.Background(),
		models.Context{Type: models.TypeProduct, ID: "p1"},
		backend.Shipping{FirstName: "Ann"})
	require.NoError(t, err)

	parsed, parseErr := url.Parse(route)
	require.NoError(t, parseErr)
	assert.Equal(t, "42", parsed.Query().Get("price"))
}
