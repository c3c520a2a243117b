package engine

import "github.com/telemstore/telemstore/store"

// Adapter binds a record kind to the engine: its primary-key grammar, its
// indexed dimensions, its payload codec and its query grammar. One adapter
// per kind; the engine is generic over (T, Q) pairs an adapter covers.
type Adapter[T, Q any] interface {
	// Validate rejects records that cannot be keyed, such as labels
	// carrying grammar separators. Runs before any write.
	Validate(rec T) error
	// PrimaryKey derives the record's primary key. Two logically identical
	// records must collide.
	PrimaryKey(rec T) string
	// Postings enumerates the secondary-index writes for the record. Every
	// posting key carries the primary key verbatim as its suffix.
	Postings(rec T, primary string) []store.Posting
	// EncodePayload serializes the full record.
	EncodePayload(rec T) ([]byte, error)
	// DecodePayload reverses EncodePayload exactly.
	DecodePayload(data []byte) (T, error)
	// Families lists the secondary families the kind indexes into,
	// declared on the backend at open time.
	Families() []string
	// Probes translates a query into index probes. Validation mirrors the
	// write side so a malformed predicate cannot alias a posting.
	Probes(q Q) (Probes, error)
}

// Probe is one prefix lookup against a secondary family.
type Probe struct {
	Family string
	Prefix string
}

// TimeRange is an inclusive timestamp constraint; nil bounds are open.
type TimeRange struct {
	Start *int64
	End   *int64
}

// Probes is the probe plan for one query.
type Probes struct {
	Prefixes  []Probe
	TimeRange *TimeRange
}

// Empty reports whether no predicate is present. The engine defines the
// globally-empty query to match nothing.
func (p Probes) Empty() bool {
	return len(p.Prefixes) == 0 && p.TimeRange == nil
}
