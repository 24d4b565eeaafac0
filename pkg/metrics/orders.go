package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderFlowMetrics records checkout pipeline outcomes.
type OrderFlowMetrics struct {
	checkoutDuration *prometheus.HistogramVec
	ordersCreated    *prometheus.CounterVec
	ordersFailed     *prometheus.CounterVec
	matchOutcome     *prometheus.CounterVec
	statusChanges    *prometheus.CounterVec
}

// NewOrderFlowMetrics registers the order flow metrics on the provided registerer.
func NewOrderFlowMetrics(reg prometheus.Registerer) *OrderFlowMetrics {
	if reg == nil {
		return &OrderFlowMetrics{}
	}
	checkoutDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout processing in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted successfully.",
	}, []string{"shipping_method"})
	ordersFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Checkout attempts rejected before persistence.",
	}, []string{"reason"})
	matchOutcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "product_match_total",
		Help: "Cart line product matches by resolution stage.",
	}, []string{"stage"})
	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Admin order status transitions applied.",
	}, []string{"from", "to"})
	reg.MustRegister(checkoutDuration, ordersCreated, ordersFailed, matchOutcome, statusChanges)
	return &OrderFlowMetrics{
		checkoutDuration: checkoutDuration,
		ordersCreated:    ordersCreated,
		ordersFailed:     ordersFailed,
		matchOutcome:     matchOutcome,
		statusChanges:    statusChanges,
	}
}

// ObserveCheckout records the duration of a checkout attempt.
func (m *OrderFlowMetrics) ObserveCheckout(outcome string, duration time.Duration) {
	if m == nil || m.checkoutDuration == nil {
		return
	}
	m.checkoutDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncOrderCreated increments the created counter for the shipping method.
func (m *OrderFlowMetrics) IncOrderCreated(shippingMethod string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(normalizeLabel(shippingMethod)).Inc()
}

// IncOrderFailed increments the failure counter for the given reason.
func (m *OrderFlowMetrics) IncOrderFailed(reason string) {
	if m == nil || m.ordersFailed == nil {
		return
	}
	m.ordersFailed.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncMatchOutcome increments the match counter for the resolution stage.
func (m *OrderFlowMetrics) IncMatchOutcome(stage string) {
	if m == nil || m.matchOutcome == nil {
		return
	}
	m.matchOutcome.WithLabelValues(normalizeLabel(stage)).Inc()
}

// IncStatusChange increments the transition counter for a from/to pair.
func (m *OrderFlowMetrics) IncStatusChange(from, to string) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
