package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	apperrors "storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/logger"
	"storefront-gateway/internal/common/metrics"
	checkoutmodels "storefront-gateway/internal/features/checkout/models"
	identitymodels "storefront-gateway/internal/features/identity/models"
	"storefront-gateway/internal/features/payment/models"
	"storefront-gateway/internal/platform/backend"
)

// inFlightTTL bounds how long a selection stays locked when a client
// vanishes mid-request.
const inFlightTTL = 30 * time.Second

// DispatchResult tells the client where the selected method continues.
type DispatchResult struct {
	OrderID string `json:"orderId,omitempty"`
	Next    string `json:"next"`
}

// Dispatcher routes a method selection: every method except Stars
// creates exactly one upstream order before navigation; Stars defers
// order creation to its own sub-flow, where the order and the invoice
// are created atomically.
type Dispatcher struct {
	client Backend
	locks  Locks
}

func NewDispatcher(client Backend, locks Locks) *Dispatcher {
	return &Dispatcher{client: client, locks: locks}
}

func (d *Dispatcher) Dispatch(ctx context.Context, user *identitymodels.User, checkout checkoutmodels.Context, method models.PaymentMethod) (*DispatchResult, error) {
	if !method.Valid() {
		return nil, apperrors.New(apperrors.ErrCodeBadRequest, fmt.Sprintf("Unknown payment method %q", method))
	}
	if err := checkout.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid order parameters")
	}

	if method == models.MethodStars {
		return &DispatchResult{Next: "/payment/stars?" + checkout.Query().Encode()}, nil
	}

	// The in-flight lock is the server-side twin of disabling the
	// method buttons: a second click for the same selection cannot
	// create a second order.
	lockKey := d.lockKey(user.TelegramID, checkout, method)
	acquired, err := d.locks.AcquireLock(ctx, lockKey, inFlightTTL)
	if err != nil {
		return nil, apperrors.NewCacheError("acquire order lock", err)
	}
	if !acquired {
		return nil, apperrors.New(apperrors.ErrCodeOrderInFlight, "Order creation already in progress")
	}

	order, err := d.client.CreateOrder(ctx, &backend.CreateOrderRequest{
		UserID:          user.ID,
		TelegramID:      user.TelegramID,
		FirstName:       user.FirstName,
		Username:        user.Username,
		OrderType:       checkout.BackendOrderType(),
		Items:           checkout.Items(),
		PaymentMethod:   method.Backend(),
		Shipping:        checkout.Shipping,
		DonationMessage: checkout.Message,
		IdempotencyKey:  uuid.New().String(),
	})
	if err != nil {
		// Abort the flow: no partial order is left selectable, the
		// method becomes selectable again.
		if releaseErr := d.locks.ReleaseLock(ctx, lockKey); releaseErr != nil {
			logger.Warn().Err(releaseErr).Str("key", lockKey).Msg("Failed to release order lock")
		}
		metrics.OrderCreateFailuresTotal.WithLabelValues(string(method)).Inc()
		return nil, apperrors.NewUpstreamError("create order", err)
	}

	// The lock only covers the in-flight window. Once the order exists
	// a repeat selection is a new purchase, not a double click.
	if releaseErr := d.locks.ReleaseLock(ctx, lockKey); releaseErr != nil {
		logger.Warn().Err(releaseErr).Str("key", lockKey).Msg("Failed to release order lock")
	}

	metrics.OrdersCreatedTotal.WithLabelValues(string(method)).Inc()
	logger.Info().
		Str("order_id", order.ID).
		Str("method", string(method)).
		Str("order_type", checkout.Type).
		Msg("Order created")

	return &DispatchResult{
		OrderID: order.ID,
		Next:    confirmationRoute(method, order.ID, checkout),
	}, nil
}

func confirmationRoute(method models.PaymentMethod, orderID string, checkout checkoutmodels.Context) string {
	values := url.Values{}
	values.Set("orderId", orderID)
	values.Set("price", checkoutmodels.FormatPrice(checkout.Price))
	if checkout.Type == checkoutmodels.TypeRating {
		values.Set("rating", "true")
	}
	return fmt.Sprintf("/payment/%s?%s", method, values.Encode())
}

func (d *Dispatcher) lockKey(telegramID string, checkout checkoutmodels.Context, method models.PaymentMethod) string {
	sum := sha256.Sum256([]byte(checkout.Query().Encode() + "|" + string(method)))
	return fmt.Sprintf("order-inflight:%s:%s", telegramID, hex.EncodeToString(sum[:8]))
}
