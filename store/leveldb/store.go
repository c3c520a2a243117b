// Package leveldb implements the store.Backend capability set on top of
// goleveldb, the log-structured store.
package leveldb

import (
	"bytes"
	"errors"
	"fmt"

	ldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/telemstore/telemstore/keyset"
	"github.com/telemstore/telemstore/store"
)

// Store is a goleveldb-backed store.Backend. Families are key namespaces;
// the pending batch is a *leveldb.Batch applied atomically on commit.
type Store struct {
	db       *ldb.DB
	families map[string]struct{}
	batch    *ldb.Batch
}

// Open opens (or creates) a LevelDB database at path and declares the
// secondary families.
func Open(path string, families ...string) (*Store, error) {
	db, err := ldb.OpenFile(path, &opt.Options{
		Filter: filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrOpen, err)
	}
	declared := map[string]struct{}{store.DefaultFamily: {}}
	for _, f := range families {
		declared[f] = struct{}{}
	}
	return &Store{db: db, families: declared}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StartBatch begins a pending batch.
func (s *Store) StartBatch() error {
	if s.batch != nil {
		return store.ErrBatchAlreadyStarted
	}
	s.batch = new(ldb.Batch)
	return nil
}

// CommitBatch applies the pending batch atomically.
func (s *Store) CommitBatch() error {
	if s.batch == nil {
		return store.ErrBatchNotStarted
	}
	batch := s.batch
	s.batch = nil
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("%w: %v", store.ErrDisconnect, err)
	}
	return nil
}

// RollbackBatch discards the pending batch.
func (s *Store) RollbackBatch() {
	s.batch = nil
}

func (s *Store) set(key, value []byte) error {
	if s.batch != nil {
		s.batch.Put(key, value)
		return nil
	}
	if err := s.db.Put(key, value, nil); err != nil {
		return fmt.Errorf("%w: %v", store.ErrDisconnect, err)
	}
	return nil
}

// Put writes key -> value in the default family.
func (s *Store) Put(key string, value []byte) error {
	return s.set(store.NamespacedKey(store.DefaultFamily, key), value)
}

// Get is a point lookup in the default family.
func (s *Store) Get(key string) ([]byte, bool, error) {
	value, err := s.db.Get(store.NamespacedKey(store.DefaultFamily, key), nil)
	if errors.Is(err, ldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", store.ErrDisconnect, err)
	}
	return value, true, nil
}

// GetMulti returns the values of the keys that exist, hits only.
func (s *Store) GetMulti(keys []string) ([][]byte, error) {
	values := make([][]byte, 0, len(keys))
	for _, key := range keys {
		value, found, err := s.Get(key)
		if err != nil {
			return nil, err
		}
		if found {
			values = append(values, value)
		}
	}
	return values, nil
}

// CreateIndex writes indexKey -> primary into family.
func (s *Store) CreateIndex(family, primary, indexKey string) error {
	if err := s.checkFamily(family); err != nil {
		return err
	}
	return s.set(store.NamespacedKey(family, indexKey), []byte(primary))
}

// QueryIndex collects the posting values under prefix in family.
func (s *Store) QueryIndex(family, prefix string) (keyset.Set, error) {
	if err := s.checkFamily(family); err != nil {
		return nil, err
	}
	results := keyset.Set{}
	it := s.db.NewIterator(util.BytesPrefix(store.NamespacedKey(family, prefix)), nil)
	defer it.Release()
	for it.Next() {
		// Iterator buffers are reused between calls.
		results.Add(string(it.Value()))
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrDisconnect, err)
	}
	return results, nil
}

// QueryTimestampIndex collects the posting values whose timestamp field
// lies in [start, end].
func (s *Store) QueryTimestampIndex(family string, start, end *int64) (keyset.Set, error) {
	if err := s.checkFamily(family); err != nil {
		return nil, err
	}
	famPrefix := store.NamespacedKey(family, store.TimestampFamily+"|")
	it := s.db.NewIterator(util.BytesPrefix(famPrefix), nil)
	defer it.Release()

	var ok bool
	if start != nil {
		ok = it.Seek(store.NamespacedKey(family, store.TimestampSeekKey(*start)))
	} else {
		ok = it.First()
	}

	results := keyset.Set{}
	for ; ok; ok = it.Next() {
		if !bytes.HasPrefix(it.Key(), famPrefix) {
			break
		}
		ts, err := store.ParseTimestampField(store.LocalKey(family, it.Key()))
		if err != nil {
			return nil, err
		}
		if start != nil && ts < *start {
			continue
		}
		if end != nil && ts > *end {
			break
		}
		results.Add(string(it.Value()))
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrDisconnect, err)
	}
	return results, nil
}

func (s *Store) checkFamily(family string) error {
	if _, ok := s.families[family]; !ok {
		return fmt.Errorf("%w: %s", store.ErrFamilyNotFound, family)
	}
	return nil
}
