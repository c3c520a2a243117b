package telemetry

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/telemstore/telemstore/engine"
	"github.com/telemstore/telemstore/store"
)

// MetricAdapter binds Metric/MetricQuery to the engine.
//
// Primary key: <name>|<20-digit-ts>|<labels-key-form>. Indexed dimensions:
// name, timestamp, labels.
type MetricAdapter struct{}

var _ engine.Adapter[Metric, MetricQuery] = MetricAdapter{}

// Validate rejects metrics whose name or labels carry grammar separators.
func (MetricAdapter) Validate(m Metric) error {
	if err := validateName(m.Name); err != nil {
		return err
	}
	return m.Labels.Validate()
}

// PrimaryKey derives the metric's primary key.
func (MetricAdapter) PrimaryKey(m Metric) string {
	return fmt.Sprintf("%s|%s|%s", m.Name, padTimestamp(m.Timestamp), m.Labels.KeyForm())
}

// Postings emits one name posting, one timestamp posting and one label
// posting per label, all suffixed with the primary key.
func (MetricAdapter) Postings(m Metric, primary string) []store.Posting {
	postings := make([]store.Posting, 0, 2+len(m.Labels))
	postings = append(postings,
		store.Posting{Family: FamilyTimestamp, Key: timestampPostingKey(m.Timestamp, primary)},
		store.Posting{Family: FamilyName, Key: namePostingKey(m.Name, primary)},
	)
	for _, l := range m.Labels {
		postings = append(postings, store.Posting{Family: FamilyLabels, Key: labelPostingKey(l, primary)})
	}
	return postings
}

// EncodePayload serializes the metric.
func (MetricAdapter) EncodePayload(m Metric) ([]byte, error) {
	return gobEncode(m)
}

// DecodePayload reverses EncodePayload.
func (MetricAdapter) DecodePayload(data []byte) (Metric, error) {
	return gobDecode[Metric](data)
}

// Families lists the metric index families.
func (MetricAdapter) Families() []string {
	return []string{FamilyName, FamilyTimestamp, FamilyLabels}
}

// Probes plans the index lookups for a metric query.
func (MetricAdapter) Probes(q MetricQuery) (engine.Probes, error) {
	var probes engine.Probes
	if q.Name != nil {
		if err := validateName(*q.Name); err != nil {
			return engine.Probes{}, err
		}
		probes.Prefixes = append(probes.Prefixes, engine.Probe{
			Family: FamilyName,
			Prefix: namePrefix(*q.Name),
		})
	}
	lps, err := labelProbes(q.Labels)
	if err != nil {
		return engine.Probes{}, err
	}
	probes.Prefixes = append(probes.Prefixes, lps...)
	probes.TimeRange = timeRange(q.TimestampStart, q.TimestampEnd)
	return probes, nil
}

func labelProbes(labels Labels) ([]engine.Probe, error) {
	if err := labels.Validate(); err != nil {
		return nil, err
	}
	probes := make([]engine.Probe, 0, len(labels))
	for _, l := range labels {
		probes = append(probes, engine.Probe{Family: FamilyLabels, Prefix: labelPrefix(l)})
	}
	return probes, nil
}

func timeRange(start, end *int64) *engine.TimeRange {
	if start == nil && end == nil {
		return nil
	}
	return &engine.TimeRange{Start: start, End: end}
}

func gobEncode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrCodec, err)
	}
	return buf.Bytes(), nil
}

func gobDecode[T any](data []byte) (T, error) {
	var v T
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %v", store.ErrCodec, err)
	}
	return v, nil
}
