package book

import (
	"encoding/json"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/cetincan0/gochess/internal/tablebase"
)

// Store is a BadgerDB-backed persistent cache, grounded on hailam's
// internal/storage.Storage (same DefaultOptions/disabled-logger wrapper
// pattern), repurposed here to cache positions probed against the Lichess
// tablebase API across process restarts (it implements tablebase.Cache).
// It stores nothing about book moves.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) a Badger database at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database's file handles.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

const tbKeyPrefix = "tb:"

// Get implements tablebase.Cache.
func (s *Store) Get(key string) (tablebase.ProbeResult, bool) {
	var result tablebase.ProbeResult
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tbKeyPrefix + key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &result); err != nil {
				return err
			}
			found = true
			return nil
		})
	})
	if err != nil {
		return tablebase.ProbeResult{}, false
	}
	return result, found
}

// Put implements tablebase.Cache.
func (s *Store) Put(key string, result tablebase.ProbeResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(tbKeyPrefix+key), data)
	})
}
