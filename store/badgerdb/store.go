// Package badgerdb implements the store.Backend capability set on top of
// BadgerDB, the LSM store.
package badgerdb

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/telemstore/telemstore/keyset"
	"github.com/telemstore/telemstore/store"
)

// Store is a BadgerDB-backed store.Backend. Families are declared at open
// time and realized as key namespaces; a pending batch is staged in memory
// and applied inside a single update transaction on commit.
type Store struct {
	db       *badger.DB
	families map[string]struct{}
	batch    []write
}

type write struct {
	key   []byte
	value []byte
}

// Options configures the store.
type Options struct {
	// Path to the database directory. Empty means in-memory mode.
	Path string
	// InMemory forces in-memory mode even if Path is set.
	InMemory bool
	// Logger for BadgerDB internals. Nil disables Badger's own logging.
	Logger badger.Logger
}

// Open opens a BadgerDB database and declares the secondary families. The
// default family always exists.
func Open(opts Options, families ...string) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	if opts.Path == "" || opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	}
	badgerOpts = badgerOpts.WithLogger(opts.Logger)

	db, err := badger.Open(badgerOpts)
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
	s.batch = []write{}
	return nil
}

// CommitBatch applies the pending batch in one transaction.
func (s *Store) CommitBatch() error {
	if s.batch == nil {
		return store.ErrBatchNotStarted
	}
	batch := s.batch
	s.batch = nil
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, w := range batch {
			if err := txn.Set(w.key, w.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrDisconnect, err)
	}
	return nil
}

// RollbackBatch discards the pending batch.
func (s *Store) RollbackBatch() {
	s.batch = nil
}

func (s *Store) set(key []byte, value []byte) error {
	if s.batch != nil {
		s.batch = append(s.batch, write{key: key, value: value})
		return nil
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
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
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(store.NamespacedKey(store.DefaultFamily, key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
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
	err := s.db.View(func(txn *badger.Txn) error {
		for _, key := range keys {
			item, err := txn.Get(store.NamespacedKey(store.DefaultFamily, key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, value)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrDisconnect, err)
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
	nsPrefix := store.NamespacedKey(family, prefix)
	results := keyset.Set{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = nsPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(nsPrefix); it.Valid(); it.Next() {
			if !bytes.HasPrefix(it.Item().Key(), nsPrefix) {
				break
			}
			primary, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			results.Add(string(primary))
		}
		return nil
	})
	if err != nil {
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
	seek := famPrefix
	if start != nil {
		seek = store.NamespacedKey(family, store.TimestampSeekKey(*start))
	}

	results := keyset.Set{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = famPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(seek); it.Valid(); it.Next() {
			if !bytes.HasPrefix(it.Item().Key(), famPrefix) {
				break
			}
			ts, err := store.ParseTimestampField(store.LocalKey(family, it.Item().Key()))
			if err != nil {
				return err
			}
			if start != nil && ts < *start {
				continue
			}
			if end != nil && ts > *end {
				break
			}
			primary, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			results.Add(string(primary))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrBadPostingKey) {
			return nil, err
		}
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
