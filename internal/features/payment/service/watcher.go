package service

import (
	"context"
	"time"

	"storefront-gateway/internal/common/logger"
	"storefront-gateway/internal/common/metrics"
	"storefront-gateway/internal/features/payment/models"
)

// Watch outcomes.
type Outcome string

const (
	OutcomeConfirmed Outcome = "confirmed"
	OutcomeTimeout   Outcome = "timeout"
	OutcomeCancelled Outcome = "cancelled"
)

// Default polling schedule: first poll 1s after invoice creation, then
// every 2s, capped at 150 iterations (~5 minutes).
const (
	defaultInitialDelay = time.Second
	defaultPollInterval = 2 * time.Second
	defaultMaxPolls     = 150
)

// PaymentStatusFunc fetches the current payment status of an order.
type PaymentStatusFunc func(ctx context.Context, orderID string) (models.PaymentStatus, error)

// ConfirmationWatcher polls an order until its payment is confirmed.
// The openInvoice completion callback is unreliable across Telegram
// clients, so polling the order is the source of truth. The watcher is
// fully driven by its context: cancelling it (the caller navigating
// away) stops the poll before the next state inspection, so a stale
// tick can never act.
type ConfirmationWatcher struct {
	fetch        PaymentStatusFunc
	initialDelay time.Duration
	interval     time.Duration
	maxPolls     int
}

func NewConfirmationWatcher(fetch PaymentStatusFunc) *ConfirmationWatcher {
	return &ConfirmationWatcher{
		fetch:        fetch,
		initialDelay: defaultInitialDelay,
		interval:     defaultPollInterval,
		maxPolls:     defaultMaxPolls,
	}
}

// WithSchedule overrides the polling schedule. Tests inject millisecond
// intervals here.
func (w *ConfirmationWatcher) WithSchedule(initialDelay, interval time.Duration, maxPolls int) *ConfirmationWatcher {
	w.initialDelay = initialDelay
	w.interval = interval
	w.maxPolls = maxPolls
	return w
}

// Watch blocks until the order confirms, the iteration cap is reached,
// or ctx is cancelled. Transient fetch errors consume an iteration and
// polling continues; there is no other retry policy.
func (w *ConfirmationWatcher) Watch(ctx context.Context, orderID string) Outcome {
	timer := time.NewTimer(w.initialDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		metrics.StarsPollOutcomesTotal.WithLabelValues(string(OutcomeCancelled)).Inc()
		return OutcomeCancelled
	case <-timer.C:
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for i := 0; i < w.maxPolls; i++ {
		if outcome, done := w.poll(ctx, orderID, i); done {
			metrics.StarsPollOutcomesTotal.WithLabelValues(string(outcome)).Inc()
			return outcome
		}

		select {
		case <-ctx.Done():
			metrics.StarsPollOutcomesTotal.WithLabelValues(string(OutcomeCancelled)).Inc()
			return OutcomeCancelled
		case <-ticker.C:
		}
	}

	logger.Warn().Str("order_id", orderID).Int("polls", w.maxPolls).Msg("Stars confirmation timed out")
	metrics.StarsPollOutcomesTotal.WithLabelValues(string(OutcomeTimeout)).Inc()
	return OutcomeTimeout
}

func (w *ConfirmationWatcher) poll(ctx context.Context, orderID string, iteration int) (Outcome, bool) {
	if ctx.Err() != nil {
		return OutcomeCancelled, true
	}

	status, err := w.fetch(ctx, orderID)
	if err != nil {
		logger.Debug().Err(err).Str("order_id", orderID).Int("iteration", iteration).Msg("Stars poll failed, continuing")
		return "", false
	}

	if status == models.PaymentConfirmed {
		logger.Info().Str("order_id", orderID).Int("iteration", iteration).Msg("Stars payment confirmed")
		return OutcomeConfirmed, true
	}
	return "", false
}
