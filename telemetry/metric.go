package telemetry

import (
	"fmt"
	"time"
)

// Metric is a named float64 sample at a nanosecond timestamp.
type Metric struct {
	Timestamp int64   `json:"timestamp"`
	Name      string  `json:"name"`
	Labels    Labels  `json:"labels"`
	Value     float64 `json:"value"`
}

// IncomingMetric is a metric whose timestamp may be absent; clients on the
// local-emit path often omit it.
type IncomingMetric struct {
	Timestamp *int64  `json:"timestamp"`
	Name      string  `json:"name"`
	Labels    Labels  `json:"labels"`
	Value     float64 `json:"value"`
}

// Record fills a missing timestamp with the current wall clock.
func (in IncomingMetric) Record() Metric {
	ts := time.Now().UnixNano()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	return Metric{
		Timestamp: ts,
		Name:      in.Name,
		Labels:    in.Labels,
		Value:     in.Value,
	}
}

// String renders the metric as `<rfc3339> <name>{labels} <value>`.
func (m Metric) String() string {
	date := time.Unix(0, m.Timestamp).UTC().Format(time.RFC3339Nano)
	return fmt.Sprintf("%s %s%s %v", date, m.Name, m.Labels, m.Value)
}
