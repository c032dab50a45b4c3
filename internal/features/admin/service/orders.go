package service

import (
	"context"

	apperrors "storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/logger"
	paymentmodels "storefront-gateway/internal/features/payment/models"
	"storefront-gateway/internal/platform/backend"
)

// OrderView is an order with the transitions an operator may take from
// its current state.
type OrderView struct {
	backend.Order
	NextStatuses        []paymentmodels.OrderStatus   `json:"nextStatuses"`
	NextPaymentStatuses []paymentmodels.PaymentStatus `json:"nextPaymentStatuses"`
}

// OrderAdminService manages order fulfillment.
type OrderAdminService struct {
	client Backend
}

func NewOrderAdminService(client Backend) *OrderAdminService {
	return &OrderAdminService{client: client}
}

func view(order backend.Order) OrderView {
	return OrderView{
		Order:               order,
		NextStatuses:        paymentmodels.AllowedOrderTransitions(paymentmodels.OrderStatus(order.Status)),
		NextPaymentStatuses: paymentmodels.AllowedPaymentTransitions(paymentmodels.PaymentStatus(order.PaymentStatus)),
	}
}

// List returns all orders, optionally filtered by fulfillment status.
func (s *OrderAdminService) List(ctx context.Context, status string) ([]OrderView, error) {
	orders, err := s.client.GetAdminOrders(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError("list orders", err)
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		if status != "" && order.Status != status {
			continue
		}
		views = append(views, view(order))
	}
	return views, nil
}

func (s *OrderAdminService) Get(ctx context.Context, id string) (*OrderView, error) {
	order, err := s.client.GetOrderDetail(ctx, id)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, apperrors.NewOrderNotFoundError(id)
		}
		return nil, apperrors.NewUpstreamError("order detail", err)
	}
	v := view(*order)
	return &v, nil
}

// SetStatus advances the fulfillment state. Illegal transitions are
// rejected here; the upstream still owns final enforcement.
func (s *OrderAdminService) SetStatus(ctx context.Context, id string, target paymentmodels.OrderStatus) (*OrderView, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !paymentmodels.CanTransitOrder(paymentmodels.OrderStatus(current.Status), target) {
		return nil, apperrors.NewIllegalTransitionError(current.Status, string(target))
	}

	if err := s.client.UpdateOrderStatus(ctx, id, string(target)); err != nil {
		return nil, apperrors.NewUpstreamError("update order status", err)
	}

	logger.Info().Str("order_id", id).Str("status", string(target)).Msg("Order status updated")
	current.Status = string(target)
	v := view(current.Order)
	return &v, nil
}

// SetPaymentStatus moves the payment state, including the FAILED to
// PENDING reset that re-opens a rejected payment.
func (s *OrderAdminService) SetPaymentStatus(ctx context.Context, id string, target paymentmodels.PaymentStatus) (*OrderView, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !paymentmodels.CanTransitPayment(paymentmodels.PaymentStatus(current.PaymentStatus), target) {
		return nil, apperrors.NewIllegalTransitionError(current.PaymentStatus, string(target))
	}

	if err := s.client.UpdatePaymentStatus(ctx, id, string(target)); err != nil {
		return nil, apperrors.NewUpstreamError("update payment status", err)
	}

	logger.Info().Str("order_id", id).Str("payment_status", string(target)).Msg("Payment status updated")
	current.PaymentStatus = string(target)
	v := view(current.Order)
	return &v, nil
}

// Message sends the order's customer a support message tagged with the
// order id.
func (s *OrderAdminService) Message(ctx context.Context, id, text string) error {
	if text == "" {
		return apperrors.New(apperrors.ErrCodeBadRequest, "Message text is required")
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.client.SendSupportMessage(ctx, &backend.SendSupportMessage{
		UserID:  order.UserID,
		Message: text,
		OrderID: id,
	})
	if err != nil {
		return apperrors.NewUpstreamError("send order message", err)
	}
	return nil
}
