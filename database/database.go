// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package database defines the key-value storage interface behind the
// ledger store. Production deployments back it with pebbledb or leveldb;
// tests use memdb.
package database

import "errors"

var (
	ErrClosed   = errors.New("database: closed")
	ErrNotFound = errors.New("database: not found")
)

type KeyValueReader interface {
	Has(key []byte) (bool, error)
	Get(key []byte) ([]byte, error)
}

type KeyValueWriter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

type Iteratee interface {
	// NewIteratorWithPrefix returns an iterator over all keys sharing the
	// given prefix, in lexicographic order.
	NewIteratorWithPrefix(prefix []byte) Iterator
}

type Batch interface {
	KeyValueWriter
	Size() int
	Write() error
	Reset()
}

type Batcher interface {
	NewBatch() Batch
}

// Database is the full contract a storage backend must satisfy.
type Database interface {
	KeyValueReader
	KeyValueWriter
	Iteratee
	Batcher
	Close() error
}

// GetUInt64 reads an 8-byte big-endian value, returning ErrNotFound if
// absent.
func GetUInt64(db KeyValueReader, key []byte) (uint64, error) {
	b, err := db.Get(key)
	if err != nil {
		return 0, err
	}
	if len(b) != 8 {
		return 0, errors.New("database: corrupted uint64 value")
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// PutUInt64 writes v as an 8-byte big-endian value.
func PutUInt64(db KeyValueWriter, key []byte, v uint64) error {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return db.Put(key, b)
}
