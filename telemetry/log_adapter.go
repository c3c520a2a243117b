package telemetry

import (
	"fmt"

	"github.com/telemstore/telemstore/engine"
	"github.com/telemstore/telemstore/store"
)

// LogAdapter binds Log/LogQuery to the engine.
//
// Primary key: <20-digit-ts>|<labels-key-form>. Logs have no name field, so
// the indexed dimensions are timestamp and labels only.
type LogAdapter struct{}

var _ engine.Adapter[Log, LogQuery] = LogAdapter{}

// Validate rejects logs whose labels carry grammar separators.
func (LogAdapter) Validate(l Log) error {
	return l.Labels.Validate()
}

// PrimaryKey derives the log's primary key.
func (LogAdapter) PrimaryKey(l Log) string {
	return fmt.Sprintf("%s|%s", padTimestamp(l.Timestamp), l.Labels.KeyForm())
}

// Postings emits one timestamp posting and one label posting per label.
func (LogAdapter) Postings(l Log, primary string) []store.Posting {
	postings := make([]store.Posting, 0, 1+len(l.Labels))
	postings = append(postings,
		store.Posting{Family: FamilyTimestamp, Key: timestampPostingKey(l.Timestamp, primary)},
	)
	for _, lbl := range l.Labels {
		postings = append(postings, store.Posting{Family: FamilyLabels, Key: labelPostingKey(lbl, primary)})
	}
	return postings
}

// EncodePayload serializes the log.
func (LogAdapter) EncodePayload(l Log) ([]byte, error) {
	return gobEncode(l)
}

// DecodePayload reverses EncodePayload.
func (LogAdapter) DecodePayload(data []byte) (Log, error) {
	return gobDecode[Log](data)
}

// Families lists the log index families.
func (LogAdapter) Families() []string {
	return []string{FamilyTimestamp, FamilyLabels}
}

// Probes plans the index lookups for a log query.
func (LogAdapter) Probes(q LogQuery) (engine.Probes, error) {
	var probes engine.Probes
	lps, err := labelProbes(q.Labels)
	if err != nil {
		return engine.Probes{}, err
	}
	probes.Prefixes = lps
	probes.TimeRange = timeRange(q.TimestampStart, q.TimestampEnd)
	return probes, nil
}
