package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/platform/backend"
	"storefront-gateway/internal/platform/telegram"
)

func TestStarsQuote(t *testing.T) {
	s := NewStarsService(&fakeBackend{}, 100)
	assert.Equal(t, 2500, s.Quote(25))
	assert.Equal(t, 1999, s.Quote(19.99))
	assert.Equal(t, 1000, s.Quote(9.996))
}

func TestStarsPayRejectedWithoutBridge(t *testing.T) {
	client := &fakeBackend{}
	s := NewStarsService(client, 100)

	_, err := s.Pay(context.Background(), telegram.NullBridge{}, testUser(), productCheckout())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeBridgeUnavailable, appErr.Code)

	// The guard fires before any upstream traffic.
	assert.Zero(t, client.createStarsCalls)
}

func TestStarsPayOpensInvoice(t *testing.T) {
	client := &fakeBackend{
		starsOrder: backend.StarsOrder{
			InvoiceURL: "https://t.me/invoice/abc123",
			OrderID:    "order-7",
		},
	}
	s := NewStarsService(client, 100)
	bridge := telegram.NewWebAppBridge()

	payment, err := s.Pay(context.Background(), bridge, testUser(), productCheckout())
	require.NoError(t, err)

	assert.Equal(t, "order-7", payment.OrderID)
	assert.Equal(t, 3000, payment.Stars)
	assert.Equal(t, 3000*100, client.lastStarsReq.Amount)

	require.Len(t, payment.Directives, 1)
	assert.Equal(t, "open_invoice", payment.Directives[0].Action)
	assert.Equal(t, "abc123", payment.Directives[0].Slug)
}

func TestStarsPayFallsBackToLink(t *testing.T) {
	client := &fakeBackend{
		starsOrder: backend.StarsOrder{
			InvoiceURL: "https://example.com/pay/xyz",
			OrderID:    "order-8",
		},
	}
	s := NewStarsService(client, 100)
	bridge := telegram.NewWebAppBridge()

	payment, err := s.Pay(context.Background(), bridge, testUser(), productCheckout())
	require.NoError(t, err)

	require.Len(t, payment.Directives, 1)
	assert.Equal(t, "open_link", payment.Directives[0].Action)
	assert.Equal(t, "https://example.com/pay/xyz", payment.Directives[0].URL)
}

func TestStarsWatcherReadsOrderDetail(t *testing.T) {
	client := &fakeBackend{detailStatuses: []string{"PENDING", "CONFIRMED"}}
	s := NewStarsService(client, 100)

	outcome := s.NewWatcher().
		WithSchedule(0, 1, 10).
		Watch(context.Background(), "order-7")

	assert.Equal(t, OutcomeConfirmed, outcome)
	assert.Equal(t, 2, client.detailCalls)
}
