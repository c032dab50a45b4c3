package service

import (
	"context"
	"io"
	"time"

	"storefront-gateway/internal/common/cache"
	apperrors "storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/logger"
	"storefront-gateway/internal/common/metrics"
	"storefront-gateway/internal/features/payment/models"
	"storefront-gateway/internal/platform/backend"
)

const settingsCacheTTL = time.Minute

// Attachment is an uploaded proof file.
type Attachment struct {
	Filename string
	Content  io.Reader
}

// ConfirmationService handles the manual rails (card/crypto, USDT,
// PayPal): static instructions plus the "Confirm Payment" action.
type ConfirmationService struct {
	client Backend
	cache  *cache.Service
}

func NewConfirmationService(client Backend, cacheService *cache.Service) *ConfirmationService {
	return &ConfirmationService{client: client, cache: cacheService}
}

// Instructions returns the manual payment rails (USDT wallet address,
// PayPal link) shown on the confirmation pages.
func (s *ConfirmationService) Instructions(ctx context.Context) (*backend.PaymentSettings, error) {
	var settings backend.PaymentSettings
	err := s.cache.GetOrSet(ctx, "payments:settings", &settings, settingsCacheTTL, func() (interface{}, error) {
		return s.client.GetPaymentSettings(ctx)
	})
	if err != nil {
		return nil, apperrors.NewUpstreamError("payment settings", err)
	}
	return &settings, nil
}

// Confirm moves the order to AWAITING_CHECK and then attaches the
// optional proof uploads, strictly in sequence. The first failure is
// terminal for the whole action; an already-applied status change is
// deliberately not rolled back when a later attach fails.
func (s *ConfirmationService) Confirm(ctx context.Context, method models.PaymentMethod, orderID string, screenshot, ratingPhoto *Attachment) error {
	if orderID == "" {
		return apperrors.New(apperrors.ErrCodeBadRequest, "Order id is required")
	}

	if err := s.client.UpdatePaymentStatus(ctx, orderID, string(models.PaymentAwaitingCheck)); err != nil {
		if backend.IsNotFound(err) {
			return apperrors.NewOrderNotFoundError(orderID)
		}
		return apperrors.NewUpstreamError("update payment status", err)
	}
	metrics.PaymentConfirmationsTotal.WithLabelValues(string(method)).Inc()

	if screenshot != nil {
		if err := s.client.AttachScreenshot(ctx, orderID, screenshot.Filename, screenshot.Content); err != nil {
			logger.Error().Err(err).Str("order_id", orderID).Msg("Screenshot attach failed after status change")
			return apperrors.NewUpstreamError("attach screenshot", err).WithDetail("order_id", orderID)
		}
	}

	if ratingPhoto != nil {
		if err := s.client.AttachRatingPhoto(ctx, orderID, ratingPhoto.Filename, ratingPhoto.Content); err != nil {
			logger.Error().Err(err).Str("order_id", orderID).Msg("Rating photo attach failed after status change")
			return apperrors.NewUpstreamError("attach rating photo", err).WithDetail("order_id", orderID)
		}
	}

	logger.Info().
		Str("order_id", orderID).
		Str("method", string(method)).
		Bool("screenshot", screenshot != nil).
		Bool("rating_photo", ratingPhoto != nil).
		Msg("Payment confirmation submitted")
	return nil
}
