package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created upstream, by payment method",
	}, []string{"method"})

	OrderCreateFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_create_failures_total",
		Help: "Total number of failed order creations",
	}, []string{"method"})

	PaymentConfirmationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_confirmations_total",
		Help: "Total number of payment confirmations submitted, by method",
	}, []string{"method"})

	StarsInvoicesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stars_invoices_total",
		Help: "Total number of Telegram Stars invoices created",
	})

	StarsPollOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stars_poll_outcomes_total",
		Help: "Terminal outcomes of Stars confirmation polling",
	}, []string{"outcome"})

	SupportPollErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "support_poll_errors_total",
		Help: "Total number of failed support inbox poll cycles",
	})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Latency of storefront backend requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests served by the gateway",
	}, []string{"method", "path", "status"})
)
