package telemetry

import (
	"fmt"

	"github.com/telemstore/telemstore/engine"
	"github.com/telemstore/telemstore/store"
)

// TraceAdapter binds Trace/TraceQuery to the engine.
//
// Primary key: <20-digit-start>|<20-digit-end>|<labels-key-form>. The
// timestamp dimension indexes the start time; traces have no top-level name
// field.
type TraceAdapter struct{}

var _ engine.Adapter[Trace, TraceQuery] = TraceAdapter{}

// Validate rejects traces whose labels or event names carry grammar
// separators.
func (TraceAdapter) Validate(t Trace) error {
	if err := t.Labels.Validate(); err != nil {
		return err
	}
	for _, e := range t.Events {
		if err := validateName(e.Name); err != nil {
			return err
		}
	}
	return nil
}

// PrimaryKey derives the trace's primary key.
func (TraceAdapter) PrimaryKey(t Trace) string {
	return fmt.Sprintf("%s|%s|%s", padTimestamp(t.StartTime), padTimestamp(t.EndTime), t.Labels.KeyForm())
}

// Postings emits one timestamp posting on the start time and one label
// posting per label.
func (TraceAdapter) Postings(t Trace, primary string) []store.Posting {
	postings := make([]store.Posting, 0, 1+len(t.Labels))
	postings = append(postings,
		store.Posting{Family: FamilyTimestamp, Key: timestampPostingKey(t.StartTime, primary)},
	)
	for _, l := range t.Labels {
		postings = append(postings, store.Posting{Family: FamilyLabels, Key: labelPostingKey(l, primary)})
	}
	return postings
}

// EncodePayload serializes the trace.
func (TraceAdapter) EncodePayload(t Trace) ([]byte, error) {
	return gobEncode(t)
}

// DecodePayload reverses EncodePayload.
func (TraceAdapter) DecodePayload(data []byte) (Trace, error) {
	return gobDecode[Trace](data)
}

// Families lists the trace index families.
func (TraceAdapter) Families() []string {
	return []string{FamilyTimestamp, FamilyLabels}
}

// Probes plans the index lookups for a trace query.
func (TraceAdapter) Probes(q TraceQuery) (engine.Probes, error) {
	var probes engine.Probes
	lps, err := labelProbes(q.Labels)
	if err != nil {
		return engine.Probes{}, err
	}
	probes.Prefixes = lps
	probes.TimeRange = timeRange(q.TimestampStart, q.TimestampEnd)
	return probes, nil
}
