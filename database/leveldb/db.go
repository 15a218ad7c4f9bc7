// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package leveldb adapts syndtr/goleveldb to database.Database. It is one
// of the engines the node can open for LedgerStore (--db-engine=leveldb).
package leveldb

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/findora-network/ledgercore/database"
)

type levelDB struct {
	inner *leveldb.DB
}

// New opens (creating if absent) a leveldb-backed database.Database rooted
// at dir.
func New(dir string) (database.Database, error) {
	inner, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return &levelDB{inner: inner}, nil
}

func (db *levelDB) Has(key []byte) (bool, error) {
	return db.inner.Has(key, nil)
}

func (db *levelDB) Get(key []byte) ([]byte, error) {
	v, err := db.inner.Get(key, nil)
	if err == errors.ErrNotFound {
		return nil, database.ErrNotFound
	}
	return v, err
}

func (db *levelDB) Put(key, value []byte) error {
	return db.inner.Put(key, value, nil)
}

func (db *levelDB) Delete(key []byte) error {
	return db.inner.Delete(key, nil)
}

func (db *levelDB) Close() error {
	return db.inner.Close()
}

func (db *levelDB) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	return &levelIterator{inner: db.inner.NewIterator(util.BytesPrefix(prefix), nil)}
}

func (db *levelDB) NewBatch() database.Batch {
	return &levelBatch{db: db, inner: new(leveldb.Batch)}
}

type levelIterator struct {
	inner iterator.Iterator
}

func (it *levelIterator) Next() bool    { return it.inner.Next() }
func (it *levelIterator) Key() []byte   { return it.inner.Key() }
func (it *levelIterator) Value() []byte { return it.inner.Value() }
func (it *levelIterator) Error() error  { return it.inner.Error() }
func (it *levelIterator) Release()      { it.inner.Release() }

type levelBatch struct {
	db    *levelDB
	inner *leveldb.Batch
}

func (b *levelBatch) Put(key, value []byte) error {
	b.inner.Put(key, value)
	return nil
}

func (b *levelBatch) Delete(key []byte) error {
	b.inner.Delete(key)
	return nil
}

func (b *levelBatch) Size() int    { return b.inner.Len() }
func (b *levelBatch) Write() error { return b.db.inner.Write(b.inner, nil) }
func (b *levelBatch) Reset()       { b.inner.Reset() }
