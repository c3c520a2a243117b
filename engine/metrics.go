package engine

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments one engine. The kind label distinguishes engines
// sharing a registry.
type Metrics struct {
	recordsPosted prometheus.Counter
	queriesServed prometheus.Counter
	queryDuration prometheus.Histogram
	errors        *prometheus.CounterVec
}

// NewMetrics builds and registers engine instrumentation.
func NewMetrics(reg prometheus.Registerer, kind string) *Metrics {
	m := &Metrics{
		recordsPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "telemstore",
			Name:        "records_posted_total",
			Help:        "Records committed to the store.",
			ConstLabels: prometheus.Labels{"kind": kind},
		}),
		queriesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "telemstore",
			Name:        "queries_served_total",
			Help:        "Queries executed successfully.",
			ConstLabels: prometheus.Labels{"kind": kind},
		}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "telemstore",
			Name:        "query_duration_seconds",
			Help:        "Query execution latency.",
			ConstLabels: prometheus.Labels{"kind": kind},
			Buckets:     prometheus.DefBuckets,
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "telemstore",
			Name:        "errors_total",
			Help:        "Engine errors by operation.",
			ConstLabels: prometheus.Labels{"kind": kind},
		}, []string{"op"}),
	}
	reg.MustRegister(m.recordsPosted, m.queriesServed, m.queryDuration, m.errors)
	return m
}
