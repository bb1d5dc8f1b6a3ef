package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifekit_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lifekit_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifekit_bookings_created_total",
			Help: "Total number of bookings created",
		},
	)

	BookingDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifekit_booking_decisions_total",
			Help: "Total number of provider decisions on pending bookings",
		},
		[]string{"decision"},
	)

	BookingSettlementsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifekit_booking_settlements_total",
			Help: "Total number of dual-confirmed booking settlements",
		},
	)

	WalletOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifekit_wallet_operations_total",
			Help: "Total number of wallet ledger operations",
		},
		[]string{"kind"},
	)

	WalletTopUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifekit_wallet_topups_total",
			Help: "Total number of wallet top-ups",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifekit_notifications_total",
			Help: "Total number of notifications emitted",
		},
		[]string{"kind", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lifekit_notification_queue_length",
			Help: "Current length of the notification delivery queue",
		},
	)

	ReviewsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lifekit_reviews_submitted_total",
			Help: "Total number of reviews submitted",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated() {
	BookingsCreatedTotal.Inc()
}

func RecordBookingDecision(decision string) {
	BookingDecisionsTotal.WithLabelValues(decision).Inc()
}

func RecordBookingSettlement() {
	BookingSettlementsTotal.Inc()
}

func RecordWalletOperation(kind string) {
	WalletOperationsTotal.WithLabelValues(kind).Inc()
}

func RecordWalletTopUp() {
	WalletTopUpsTotal.Inc()
}

func RecordNotification(kind, status string) {
	NotificationsTotal.WithLabelValues(kind, status).Inc()
}

func RecordReviewSubmitted() {
	ReviewsSubmittedTotal.Inc()
}
