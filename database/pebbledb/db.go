// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pebbledb adapts cockroachdb/pebble to database.Database. This is
// the default durable backend for LedgerStore; memdb remains the backend
// for tests.
package pebbledb

import (
	"github.com/cockroachdb/pebble"

	"github.com/findora-network/ledgercore/database"
)

type pebbleDB struct {
	inner *pebble.DB
}

// New opens (creating if absent) a pebble-backed database.Database rooted
// at dir.
func New(dir string) (database.Database, error) {
	opts := &pebble.Options{}
	inner, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, err
	}
	return &pebbleDB{inner: inner}, nil
}

func (db *pebbleDB) Has(key []byte) (bool, error) {
	v, closer, err := db.inner.Get(key)
	if err == pebble.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer closer.Close()
	_ = v
	return true, nil
}

func (db *pebbleDB) Get(key []byte) ([]byte, error) {
	v, closer, err := db.inner.Get(key)
	if err == pebble.ErrNotFound {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (db *pebbleDB) Put(key, value []byte) error {
	return db.inner.Set(key, value, pebble.Sync)
}

func (db *pebbleDB) Delete(key []byte) error {
	return db.inner.Delete(key, pebble.Sync)
}

func (db *pebbleDB) Close() error {
	return db.inner.Close()
}

func (db *pebbleDB) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	upper := upperBound(prefix)
	it, err := db.inner.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upper,
	})
	if err != nil {
		return &errIterator{err: err}
	}
	return &pebbleIterator{inner: it, started: false}
}

func (db *pebbleDB) NewBatch() database.Batch {
	return &pebbleBatch{db: db, inner: db.inner.NewBatch()}
}

// upperBound returns the smallest key strictly greater than every key
// sharing prefix, so range iteration stays scoped to the prefix.
func upperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil // prefix was all 0xff: unbounded above
}

type pebbleIterator struct {
	inner   *pebble.Iterator
	started bool
}

func (it *pebbleIterator) Next() bool {
	if !it.started {
		it.started = true
		return it.inner.First()
	}
	return it.inner.Next()
}

func (it *pebbleIterator) Key() []byte   { return it.inner.Key() }
func (it *pebbleIterator) Value() []byte { return it.inner.Value() }
func (it *pebbleIterator) Error() error  { return it.inner.Error() }
func (it *pebbleIterator) Release()      { _ = it.inner.Close() }

type errIterator struct{ err error }

func (it *errIterator) Next() bool    { return false }
func (it *errIterator) Key() []byte   { return nil }
func (it *errIterator) Value() []byte { return nil }
func (it *errIterator) Error() error  { return it.err }
func (it *errIterator) Release()      {}

type pebbleBatch struct {
	db    *pebbleDB
	inner *pebble.Batch
}

func (b *pebbleBatch) Put(key, value []byte) error { return b.inner.Set(key, value, nil) }
func (b *pebbleBatch) Delete(key []byte) error     { return b.inner.Delete(key, nil) }
func (b *pebbleBatch) Size() int                   { return int(b.inner.Len()) }
func (b *pebbleBatch) Write() error                { return b.inner.Commit(pebble.Sync) }
func (b *pebbleBatch) Reset()                      { b.inner.Reset() }
