// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package memdb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/findora-network/ledgercore/database"
)

func TestPutGetDelete(t *testing.T) {
	require := require.New(t)

	db := New()
	has, err := db.Has([]byte("k"))
	require.NoError(err)
	require.False(has)

	require.NoError(db.Put([]byte("k"), []byte("v")))
	has, err = db.Has([]byte("k"))
	require.NoError(err)
	require.True(has)

	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)

	require.NoError(db.Delete([]byte("k")))
	_, err = db.Get([]byte("k"))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestIteratorOrder(t *testing.T) {
	require := require.New(t)

	db := New()
	require.NoError(db.Put([]byte("p/3"), []byte("c")))
	require.NoError(db.Put([]byte("p/1"), []byte("a")))
	require.NoError(db.Put([]byte("p/2"), []byte("b")))
	require.NoError(db.Put([]byte("q/1"), []byte("z")))

	it := db.NewIteratorWithPrefix([]byte("p/"))
	defer it.Release()

	var got []string
	for it.Next() {
		got = append(got, string(it.Value()))
	}
	require.NoError(it.Error())
	require.Equal([]string{"a", "b", "c"}, got)
}

func TestBatch(t *testing.T) {
	require := require.New(t)

	db := New()
	require.NoError(db.Put([]byte("a"), []byte("1")))

	b := db.NewBatch()
	require.NoError(b.Put([]byte("b"), []byte("2")))
	require.NoError(b.Delete([]byte("a")))
	require.NoError(b.Write())

	_, err := db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)

	v, err := db.Get([]byte("b"))
	require.NoError(err)
	require.Equal([]byte("2"), v)
}
