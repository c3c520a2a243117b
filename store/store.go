// Package store defines the capability set the index engine is written
// against: an ordered byte-keyed key-value store with named families, point
// and multi get, prefix scans, a timestamp range scan, and atomic batched
// writes. Two embedded implementations satisfy it, store/badgerdb and
// store/leveldb.
package store

import "github.com/telemstore/telemstore/keyset"

// DefaultFamily is the family holding primary -> payload pairs.
const DefaultFamily = "default"

// TimestampFamily is the family holding timestamp postings. Its keys start
// with the literal "timestamp|" followed by the 20-digit zero-padded
// nanosecond timestamp.
const TimestampFamily = "timestamp"

const (
	// TimestampFieldOffset is the byte offset of the padded timestamp
	// inside a timestamp-posting key, immediately after "timestamp|".
	TimestampFieldOffset = 10
	// TimestampFieldWidth pads decimal timestamps so lexical order equals
	// numeric order over non-negative int64.
	TimestampFieldWidth = 20
)

// Posting is one secondary-index write: Key -> primary inside Family.
type Posting struct {
	Family string
	Key    string
}

// Backend is the ordered key-value capability set.
//
// Put, Get and GetMulti address the default family. CreateIndex and the
// query methods address secondary families declared at open time. While a
// batch is open, Put and CreateIndex stage into it; queries never observe
// staged writes until CommitBatch.
type Backend interface {
	// StartBatch begins an in-memory pending batch. Fails with
	// ErrBatchAlreadyStarted if one is open.
	StartBatch() error
	// CommitBatch atomically applies the pending batch. Fails with
	// ErrBatchNotStarted if none is open.
	CommitBatch() error
	// RollbackBatch discards the pending batch, if any.
	RollbackBatch()

	// Put writes key -> value in the default family, staging into the
	// pending batch if one is open.
	Put(key string, value []byte) error
	// Get is a point lookup in the default family. The second return is
	// false when the key is absent.
	Get(key string) ([]byte, bool, error)
	// GetMulti looks up many keys in the default family and returns the
	// values of those that exist, in unspecified order. Missing keys are
	// silently omitted.
	GetMulti(keys []string) ([][]byte, error)

	// CreateIndex writes indexKey -> primary into family, staging into the
	// pending batch if one is open.
	CreateIndex(family, primary, indexKey string) error
	// QueryIndex returns the primary keys (posting values) of all entries
	// in family whose key starts with prefix. The scan stops at the first
	// key that does not share the prefix.
	QueryIndex(family, prefix string) (keyset.Set, error)
	// QueryTimestampIndex returns the primary keys of all timestamp
	// postings in family whose timestamp lies in [start, end], both
	// inclusive. A nil bound is unconstrained on that side.
	QueryTimestampIndex(family string, start, end *int64) (keyset.Set, error)

	// Close releases the backend handle. The engine never reopens it.
	Close() error
}
