package observability

import (
	"time"

	"github.com/krish0326/i-backend/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the backend.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration    *prometheus.HistogramVec
	externalErrors     *prometheus.CounterVec
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	messagesTotal      *prometheus.CounterVec
	conversationsTotal *prometheus.CounterVec
	wsConnections      prometheus.Gauge
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "interior_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interior_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interior_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interior_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		messagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interior_chat_messages_total",
				Help: "Total chatbot messages by processing status.",
			},
			[]string{"status"},
		),
		conversationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interior_chat_conversations_total",
				Help: "Total chatbot conversations by lifecycle event.",
			},
			[]string{"event"},
		),
		wsConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "interior_ws_connections",
				Help: "Currently open websocket connections.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrMessage increments the chatbot message counter with a status label
// ("processed" or "error").
func (m *Metrics) IncrMessage(status string) {
	m.messagesTotal.WithLabelValues(status).Inc()
}

// IncrConversation increments the conversation counter with a lifecycle
// event label ("started" or "completed").
func (m *Metrics) IncrConversation(event string) {
	m.conversationsTotal.WithLabelValues(event).Inc()
}

// WSConnected marks one websocket connection as open.
func (m *Metrics) WSConnected() {
	m.wsConnections.Inc()
}

// WSDisconnected marks one websocket connection as closed.
func (m *Metrics) WSDisconnected() {
	m.wsConnections.Dec()
}

// GetChatSnapshot returns a snapshot of the chatbot counters suitable
// for the GET /v1/chatbot/stats endpoint.
func (m *Metrics) GetChatSnapshot() *domain.ChatStats {
	processed := getCounterValue(m.messagesTotal, "processed")
	errored := getCounterValue(m.messagesTotal, "error")
	started := getCounterValue(m.conversationsTotal, "started")
	completed := getCounterValue(m.conversationsTotal, "completed")

	completionRate := float64(0)
	if started > 0 {
		completionRate = completed / started
	}

	return &domain.ChatStats{
		MessagesProcessed:      int64(processed),
		MessagesErrored:        int64(errored),
		ConversationsStarted:   int64(started),
		ConversationsCompleted: int64(completed),
		CompletionRate:         completionRate,
		ActiveWSConnections:    int64(getGaugeValue(m.wsConnections)),
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

// getGaugeValue extracts the current float64 value from a Gauge.
func getGaugeValue(g prometheus.Gauge) float64 {
	m := &dto.Metric{}
	if err := g.Write(m); err != nil {
		return 0
	}
	if m.Gauge != nil && m.Gauge.Value != nil {
		return *m.Gauge.Value
	}
	return 0
}
