package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-gateway/internal/features/checkout/service"
	"storefront-gateway/internal/platform/backend"
)

type fakeCheckoutBackend struct {
	productErr error
}

func (f *fakeCheckoutBackend) GetProduct(context.Context, string) (*backend.Product, error) {
	if f.productErr != nil {
		return nil, f.productErr
	}
	return &backend.Product{ID: "p1", Name: "Print", Price: 30}, nil
}

func (f *fakeCheckoutBackend) GetBundle(context.Context, string) (*backend.Bundle, error) {
	return &backend.Bundle{ID: "b1", Name: "Box", Price: 55}, nil
}

func newCheckoutRouter(client service.Backend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewCheckoutHandler(service.NewCheckoutService(client)).RegisterRoutes(router.Group("/api/v1"))
	return router
}

const shippingJSON = `{"firstName":"Ann","lastName":"Lee","address":"Main 1","city":"Berlin","zipCode":"10115","country":"DE"}`

func TestSubmitMissingItemIsNotFound(t *testing.T) {
	client := &fakeCheckoutBackend{productErr: &backend.APIError{Status: http.StatusNotFound, Path: "/products/p9", Body: "not found"}}
	router := newCheckoutRouter(client)

	// No price in the context forces the backfill lookup.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout?type=product&id=p9", strings.NewReader(shippingJSON))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitUpstreamFaultIsBadGateway(t *testing.T) {
	client := &fakeCheckoutBackend{productErr: &backend.APIError{Status: http.StatusInternalServerError, Path: "/products/p1", Body: "boom"}}
	router := newCheckoutRouter(client)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout?type=product&id=p1", strings.NewReader(shippingJSON))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSubmitSucceedsWithBackfilledPrice(t *testing.T) {
	router := newCheckoutRouter(&fakeCheckoutBackend{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout?type=product&id=p1", strings.NewReader(shippingJSON))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/payment?")
	assert.Contains(t, w.Body.String(), "price=30")
}

func TestSummaryUnsupportedTypeIsBadRequest(t *testing.T) {
	router := newCheckoutRouter(&fakeCheckoutBackend{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkout?type=rating&id=r1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
