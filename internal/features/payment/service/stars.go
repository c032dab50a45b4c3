package service

import (
	"context"
	"fmt"
	"math"

	apperrors "storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/logger"
	"storefront-gateway/internal/common/metrics"
	checkoutmodels "storefront-gateway/internal/features/checkout/models"
	identitymodels "storefront-gateway/internal/features/identity/models"
	"storefront-gateway/internal/features/payment/models"
	"storefront-gateway/internal/platform/backend"
	"storefront-gateway/internal/platform/telegram"
)

// StarsPayment is the result of creating a Stars invoice.
type StarsPayment struct {
	OrderID    string               `json:"orderId"`
	Stars      int                  `json:"stars"`
	InvoiceURL string               `json:"invoiceUrl"`
	Directives []telegram.Directive `json:"directives,omitempty"`
}

// StarsService drives the Telegram Stars sub-flow: quote, atomic
// order+invoice creation, invoice opening through the bridge, and the
// confirmation watch.
type StarsService struct {
	client      Backend
	starsPerUSD int
}

func NewStarsService(client Backend, starsPerUSD int) *StarsService {
	if starsPerUSD <= 0 {
		starsPerUSD = 100
	}
	return &StarsService{client: client, starsPerUSD: starsPerUSD}
}

// Quote converts a USD price into whole Stars, rounded.
func (s *StarsService) Quote(priceUSD float64) int {
	return int(math.Round(priceUSD * float64(s.starsPerUSD)))
}

// Pay creates the order and its invoice in one upstream call and opens
// the invoice through the bridge. Without a bridge nothing is sent:
// paying with Stars outside Telegram is unsupported, and the guard must
// fire before any network traffic.
func (s *StarsService) Pay(ctx context.Context, bridge telegram.Bridge, user *identitymodels.User, checkout checkoutmodels.Context) (*StarsPayment, error) {
	if !bridge.Available() {
		return nil, apperrors.NewBridgeUnavailableError()
	}
	if err := checkout.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid order parameters")
	}

	stars := s.Quote(checkout.Price)

	order, err := s.client.CreateStarsOrder(ctx, &backend.CreateStarsOrderRequest{
		UserID:          user.ID,
		TelegramID:      user.TelegramID,
		OrderType:       checkout.BackendOrderType(),
		Items:           checkout.Items(),
		Shipping:        checkout.Shipping,
		DonationMessage: checkout.Message,
		Title:           "Order payment",
		Description:     fmt.Sprintf("Purchase for %d Stars", stars),
		Amount:          stars * 100,
	})
	if err != nil {
		metrics.OrderCreateFailuresTotal.WithLabelValues(string(models.MethodStars)).Inc()
		return nil, apperrors.NewUpstreamError("create stars order", err)
	}
	if order.InvoiceURL == "" {
		return nil, apperrors.New(apperrors.ErrCodeUpstreamAPI, "Upstream returned no invoice URL").
			WithDetail("order_id", order.OrderID)
	}

	metrics.OrdersCreatedTotal.WithLabelValues(string(models.MethodStars)).Inc()
	metrics.StarsInvoicesTotal.Inc()

	if err := telegram.OpenInvoiceURL(bridge, order.InvoiceURL); err != nil {
		// The order and invoice exist; the client still gets the raw
		// URL and can open it as an external link.
		logger.Warn().Err(err).Str("order_id", order.OrderID).Msg("Failed to open invoice through bridge")
	}

	payment := &StarsPayment{
		OrderID:    order.OrderID,
		Stars:      stars,
		InvoiceURL: order.InvoiceURL,
	}
	if webApp, ok := bridge.(*telegram.WebAppBridge); ok {
		payment.Directives = webApp.Directives()
	}

	logger.Info().
		Str("order_id", order.OrderID).
		Int("stars", stars).
		Msg("Stars invoice created")
	return payment, nil
}

// NewWatcher builds the confirmation watcher over the order detail
// endpoint.
func (s *StarsService) NewWatcher() *ConfirmationWatcher {
	return NewConfirmationWatcher(func(ctx context.Context, orderID string) (models.PaymentStatus, error) {
		order, err := s.client.GetOrderDetail(ctx, orderID)
		if err != nil {
			return "", err
		}
		return models.PaymentStatus(order.PaymentStatus), nil
	})
}
