package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reservations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_reservations_total",
			Help: "Reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	orders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_orders_total",
			Help: "Orders by kind and status transition",
		},
		[]string{"kind", "status"},
	)

	claims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_slot_claims_total",
			Help: "Share bundle slot claims by outcome",
		},
		[]string{"outcome"},
	)

	scans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_scans_total",
			Help: "Door scans by path and outcome",
		},
		[]string{"path", "outcome"},
	)

	swept = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_swept_total",
			Help: "Records moved to expired by the sweeper",
		},
		[]string{"kind"},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_notifications_total",
			Help: "Confirmation notifications by outcome",
		},
		[]string{"outcome"},
	)

	confirmDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_confirm_duration_seconds",
			Help:    "Time spent in the order confirmation transaction",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func RecordReservation(outcome string) {
	reservations.WithLabelValues(outcome).Inc()
}

func RecordOrder(kind, status string) {
	orders.WithLabelValues(kind, status).Inc()
}

func RecordClaim(outcome string) {
	claims.WithLabelValues(outcome).Inc()
}

func RecordScan(path, outcome string) {
	scans.WithLabelValues(path, outcome).Inc()
}

func RecordSwept(kind string, n int) {
	if n > 0 {
		swept.WithLabelValues(kind).Add(float64(n))
	}
}

func RecordNotification(outcome string) {
	notifications.WithLabelValues(outcome).Inc()
}

func ObserveConfirm(seconds float64) {
	confirmDuration.Observe(seconds)
}
