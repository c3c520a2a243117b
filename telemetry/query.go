package telemetry

// MetricQuery is a conjunctive metric filter: every set field must hold for
// a record to match. A query with nothing set matches nothing.
type MetricQuery struct {
	Name           *string `json:"name"`
	TimestampStart *int64  `json:"timestamp_start"`
	TimestampEnd   *int64  `json:"timestamp_end"`
	Labels         Labels  `json:"labels"`
}

// WithName constrains the metric name.
func (q MetricQuery) WithName(name string) MetricQuery {
	q.Name = &name
	return q
}

// WithTimestampStart constrains the inclusive lower timestamp bound.
func (q MetricQuery) WithTimestampStart(ts int64) MetricQuery {
	q.TimestampStart = &ts
	return q
}

// WithTimestampEnd constrains the inclusive upper timestamp bound.
func (q MetricQuery) WithTimestampEnd(ts int64) MetricQuery {
	q.TimestampEnd = &ts
	return q
}

// WithLabel adds a label equality predicate. Repeated labels are
// conjunctive.
func (q MetricQuery) WithLabel(key, value string) MetricQuery {
	q.Labels = append(q.Labels, Label{Key: key, Value: value})
	return q
}

// LogQuery is a conjunctive log filter.
type LogQuery struct {
	TimestampStart *int64 `json:"timestamp_start"`
	TimestampEnd   *int64 `json:"timestamp_end"`
	Labels         Labels `json:"labels"`
}

// WithTimestampStart constrains the inclusive lower timestamp bound.
func (q LogQuery) WithTimestampStart(ts int64) LogQuery {
	q.TimestampStart = &ts
	return q
}

// WithTimestampEnd constrains the inclusive upper timestamp bound.
func (q LogQuery) WithTimestampEnd(ts int64) LogQuery {
	q.TimestampEnd = &ts
	return q
}

// WithLabel adds a label equality predicate.
func (q LogQuery) WithLabel(key, value string) LogQuery {
	q.Labels = append(q.Labels, Label{Key: key, Value: value})
	return q
}

// TraceQuery is a conjunctive trace filter; the time range applies to the
// trace start time.
type TraceQuery struct {
	TimestampStart *int64 `json:"timestamp_start"`
	TimestampEnd   *int64 `json:"timestamp_end"`
	Labels         Labels `json:"labels"`
}

// WithTimestampStart constrains the inclusive lower start-time bound.
func (q TraceQuery) WithTimestampStart(ts int64) TraceQuery {
	q.TimestampStart = &ts
	return q
}

// WithTimestampEnd constrains the inclusive upper start-time bound.
func (q TraceQuery) WithTimestampEnd(ts int64) TraceQuery {
	q.TimestampEnd = &ts
	return q
}

// WithLabel adds a label equality predicate.
func (q TraceQuery) WithLabel(key, value string) TraceQuery {
	q.Labels = append(q.Labels, Label{Key: key, Value: value})
	return q
}
