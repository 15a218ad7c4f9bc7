// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package memdb is an in-memory database.Database, used by tests and by the
// node's "memory" db engine.
package memdb

import (
	"bytes"
	"sort"
	"sync"

	"github.com/findora-network/ledgercore/database"
)

type memDB struct {
	lock   sync.RWMutex
	closed bool
	data   map[string][]byte
}

// New returns an empty in-memory database.Database.
func New() database.Database {
	return &memDB{
		data: make(map[string][]byte),
	}
}

func (db *memDB) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return false, database.ErrClosed
	}
	_, ok := db.data[string(key)]
	return ok, nil
}

func (db *memDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	v, ok := db.data[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (db *memDB) Put(key, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.closed {
		return database.ErrClosed
	}
	v := make([]byte, len(value))
	copy(v, value)
	db.data[string(key)] = v
	return nil
}

func (db *memDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.closed {
		return database.ErrClosed
	}
	delete(db.data, string(key))
	return nil
}

func (db *memDB) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	db.closed = true
	db.data = nil
	return nil
}

func (db *memDB) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()

	keys := make([]string, 0, len(db.data))
	for k := range db.data {
		if bytes.HasPrefix([]byte(k), prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	snapshot := make(map[string][]byte, len(keys))
	for _, k := range keys {
		snapshot[k] = db.data[k]
	}

	return &iterator{keys: keys, data: snapshot, pos: -1}
}

func (db *memDB) NewBatch() database.Batch {
	return &batch{db: db}
}

type iterator struct {
	keys []string
	data map[string][]byte
	pos  int
}

func (it *iterator) Next() bool {
	it.pos++
	return it.pos < len(it.keys)
}

func (it *iterator) Key() []byte   { return []byte(it.keys[it.pos]) }
func (it *iterator) Value() []byte { return it.data[it.keys[it.pos]] }
func (it *iterator) Error() error  { return nil }
func (it *iterator) Release()      {}

type keyValue struct {
	key    []byte
	value  []byte
	delete bool
}

type batch struct {
	db   *memDB
	ops  []keyValue
	size int
}

func (b *batch) Put(key, value []byte) error {
	b.ops = append(b.ops, keyValue{key: key, value: value})
	b.size += len(key) + len(value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, keyValue{key: key, delete: true})
	b.size += len(key)
	return nil
}

func (b *batch) Size() int { return b.size }

func (b *batch) Write() error {
	for _, op := range b.ops {
		if op.delete {
			if err := b.db.Delete(op.key); err != nil {
				return err
			}
			continue
		}
		if err := b.db.Put(op.key, op.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *batch) Reset() {
	b.ops = nil
	b.size = 0
}
