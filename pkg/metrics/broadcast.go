package metrics

import "github.com/prometheus/client_golang/prometheus"

// BroadcastMetrics records notification hub activity.
// It implements broadcast.Metrics and notifications.HeartbeatObserver.
type BroadcastMetrics struct {
	ActiveSubscriptions prometheus.Gauge
	PublishesTotal      prometheus.Counter
	DeliveriesTotal     prometheus.Counter
	UnheardTotal        prometheus.Counter
	LaggedTotal         prometheus.Counter
	HeartbeatsTotal     prometheus.Counter
}

// NewBroadcastMetrics creates and registers hub metrics on the given registry.
func NewBroadcastMetrics(reg prometheus.Registerer) *BroadcastMetrics {
	m := &BroadcastMetrics{
		ActiveSubscriptions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "broadcast",
			Name:      "subscribers",
			Help:      "Number of live notification subscriptions.",
		}),
		PublishesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcast",
			Name:      "published_total",
			Help:      "Total number of notifications published to at least one subscriber.",
		}),
		DeliveriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcast",
			Name:      "deliveries_total",
			Help:      "Total number of notifications queued across all subscriptions.",
		}),
		UnheardTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcast",
			Name:      "no_subscribers_total",
			Help:      "Total number of notifications discarded because nobody was listening.",
		}),
		LaggedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcast",
			Name:      "lagged_notifications_total",
			Help:      "Total number of notifications dropped from full subscriber backlogs.",
		}),
		HeartbeatsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "heartbeats_total",
			Help:      "Total number of keep-alive frames written to notification streams.",
		}),
	}

	reg.MustRegister(
		m.ActiveSubscriptions,
		m.PublishesTotal,
		m.DeliveriesTotal,
		m.UnheardTotal,
		m.LaggedTotal,
		m.HeartbeatsTotal,
	)
	return m
}

func (m *BroadcastMetrics) SubscribersChanged(n int) {
	m.ActiveSubscriptions.Set(float64(n))
}

func (m *BroadcastMetrics) Published(delivered int) {
	if delivered == 0 {
		m.UnheardTotal.Inc()
		return
	}
	m.PublishesTotal.Inc()
	m.DeliveriesTotal.Add(float64(delivered))
}

func (m *BroadcastMetrics) Lagged(skipped int) {
	m.LaggedTotal.Add(float64(skipped))
}

func (m *BroadcastMetrics) Heartbeat() {
	m.HeartbeatsTotal.Inc()
}
