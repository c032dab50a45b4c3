package service

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront-gateway/internal/common/errors"
	paymentmodels "storefront-gateway/internal/features/payment/models"
	"storefront-gateway/internal/platform/backend"
)

type fakeAdminBackend struct {
	orders map[string]*backend.Order

	orderStatusCalls   []string
	paymentStatusCalls []string
	sentMessages       []*backend.SendSupportMessage
}

func newFakeAdminBackend(orders ...*backend.Order) *fakeAdminBackend {
	f := &fakeAdminBackend{orders: map[string]*backend.Order{}}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeAdminBackend) CreateProduct(context.Context, *backend.Form) error           { return nil }
func (f *fakeAdminBackend) UpdateProduct(context.Context, string, *backend.Form) error   { return nil }
func (f *fakeAdminBackend) DeleteProduct(context.Context, string) error                  { return nil }
func (f *fakeAdminBackend) CreateBundle(context.Context, *backend.Form) error            { return nil }
func (f *fakeAdminBackend) UpdateBundle(context.Context, string, *backend.Form) error    { return nil }
func (f *fakeAdminBackend) DeleteBundle(context.Context, string) error                   { return nil }
func (f *fakeAdminBackend) CreateWishlistItem(context.Context, *backend.WishlistItem) error {
	return nil
}
func (f *fakeAdminBackend) UpdateWishlistItem(context.Context, string, *backend.WishlistItem) error {
	return nil
}
func (f *fakeAdminBackend) DeleteWishlistItem(context.Context, string) error { return nil }

func (f *fakeAdminBackend) GetAdminOrders(context.Context) ([]backend.Order, error) {
	orders := make([]backend.Order, 0, len(f.orders))
	for _, o := range f.orders {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (f *fakeAdminBackend) GetOrderDetail(_ context.Context, id string) (*backend.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, &backend.APIError{Status: 404, Path: "/orders/detail/" + id, Body: "not found"}
	}
	copied := *order
	return &copied, nil
}

func (f *fakeAdminBackend) UpdateOrderStatus(_ context.Context, id, status string) error {
	f.orderStatusCalls = append(f.orderStatusCalls, id+":"+status)
	f.orders[id].Status = status
	return nil
}

func (f *fakeAdminBackend) UpdatePaymentStatus(_ context.Context, id, paymentStatus string) error {
	f.paymentStatusCalls = append(f.paymentStatusCalls, id+":"+paymentStatus)
	f.orders[id].PaymentStatus = paymentStatus
	return nil
}

func (f *fakeAdminBackend) SendSupportMessage(_ context.Context, msg *backend.SendSupportMessage) error {
	f.sentMessages = append(f.sentMessages, msg)
	return nil
}

func (f *fakeAdminBackend) GetPaymentSettings(context.Context) (*backend.PaymentSettings, error) {
	return &backend.PaymentSettings{}, nil
}
func (f *fakeAdminBackend) UpdatePaymentSettings(context.Context, *backend.PaymentSettings) error {
	return nil
}
func (f *fakeAdminBackend) UpdateBranding(context.Context, *backend.Form) (*backend.Branding, error) {
	return &backend.Branding{}, nil
}
func (f *fakeAdminBackend) Upload(context.Context, string, io.Reader) (string, error) {
	return "https://cdn.example/file", nil
}

func pendingOrder(id string) *backend.Order {
	return &backend.Order{ID: id, UserID: "u1", Status: "PENDING", PaymentStatus: "PENDING"}
}

func TestSetStatusLegalTransition(t *testing.T) {
	client := newFakeAdminBackend(pendingOrder("o1"))
	s := NewOrderAdminService(client)

	updated, err := s.SetStatus(context.Background(), "o1", paymentmodels.OrderProcessing)
	require.NoError(t, err)

	assert.Equal(t, "PROCESSING", updated.Status)
	assert.Equal(t, []string{"o1:PROCESSING"}, client.orderStatusCalls)
	assert.ElementsMatch(t,
		[]paymentmodels.OrderStatus{paymentmodels.OrderCompleted, paymentmodels.OrderCancelled},
		updated.NextStatuses)
}

func TestSetStatusIllegalTransitionRejected(t *testing.T) {
	client := newFakeAdminBackend(pendingOrder("o1"))
	s := NewOrderAdminService(client)

	_, err := s.SetStatus(context.Background(), "o1", paymentmodels.OrderCompleted)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeIllegalTransition, appErr.Code)
	assert.Empty(t, client.orderStatusCalls)
}

func TestSetPaymentStatusFailedReset(t *testing.T) {
	order := pendingOrder("o1")
	order.PaymentStatus = "FAILED"
	client := newFakeAdminBackend(order)
	s := NewOrderAdminService(client)

	updated, err := s.SetPaymentStatus(context.Background(), "o1", paymentmodels.PaymentPending)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", updated.PaymentStatus)
}

func TestSetPaymentStatusConfirmedIsTerminal(t *testing.T) {
	order := pendingOrder("o1")
	order.PaymentStatus = "CONFIRMED"
	client := newFakeAdminBackend(order)
	s := NewOrderAdminService(client)

	_, err := s.SetPaymentStatus(context.Background(), "o1", paymentmodels.PaymentFailed)
	require.Error(t, err)
	assert.Empty(t, client.paymentStatusCalls)
}

func TestListFiltersByStatus(t *testing.T) {
	processing := pendingOrder("o2")
	processing.Status = "PROCESSING"
	client := newFakeAdminBackend(pendingOrder("o1"), processing)
	s := NewOrderAdminService(client)

	views, err := s.List(context.Background(), "PROCESSING")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "o2", views[0].ID)
}

func TestMessageTaggedWithOrder(t *testing.T) {
	client := newFakeAdminBackend(pendingOrder("o1"))
	s := NewOrderAdminService(client)

	require.NoError(t, s.Message(context.Background(), "o1", "your order shipped"))

	require.Len(t, client.sentMessages, 1)
	assert.Equal(t, "u1", client.sentMessages[0].UserID)
	assert.Equal(t, "o1", client.sentMessages[0].OrderID)
}

func TestGetMissingOrder(t *testing.T) {
	s := NewOrderAdminService(newFakeAdminBackend())
	_, err := s.Get(context.Background(), "nope")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeOrderNotFound, appErr.Code)
}
