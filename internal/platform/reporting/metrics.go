package reporting

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusOK     = "ok"
	statusError  = "error"
	statusCached = "cached"
)

// Metrics counts query evaluations and their latency.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the query metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medicare_query_total",
			Help: "Dashboard query evaluations by outcome",
		}, []string{"query", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medicare_query_duration_seconds",
			Help:    "Dashboard query latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"query"}),
	}
	reg.MustRegister(m.total, m.duration)
	return m
}

func (m *Metrics) observe(query, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(query, status).Inc()
	if status != statusCached {
		m.duration.WithLabelValues(query).Observe(elapsed.Seconds())
	}
}
