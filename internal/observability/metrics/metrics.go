package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the chat widget flow.
type ChatMetrics struct {
	messagesTotal  *prometheus.CounterVec
	webhookTotal   *prometheus.CounterVec
	decodeShapes   *prometheus.CounterVec
	webhookLatency prometheus.Histogram
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "driveway",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total chat messages by sender",
		}, []string{"sender"}),
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "driveway",
			Subsystem: "chat",
			Name:      "webhook_requests_total",
			Help:      "Total outbound automation webhook requests",
		}, []string{"status"}),
		decodeShapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "driveway",
			Subsystem: "chat",
			Name:      "decoded_shapes_total",
			Help:      "Webhook responses by decoded shape",
		}, []string{"shape"}),
		webhookLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "driveway",
			Subsystem: "chat",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of the automation webhook round-trip",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.webhookTotal, m.decodeShapes, m.webhookLatency)
	return m
}

func (m *ChatMetrics) ObserveMessage(sender string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(sender).Inc()
}

func (m *ChatMetrics) ObserveWebhook(status string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookTotal.WithLabelValues(status).Inc()
	m.webhookLatency.Observe(seconds)
}

func (m *ChatMetrics) ObserveDecodedShape(shape string) {
	if m == nil {
		return
	}
	m.decodeShapes.WithLabelValues(shape).Inc()
}
