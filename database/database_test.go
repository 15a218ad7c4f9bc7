// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package database_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/findora-network/ledgercore/database"
	"github.com/findora-network/ledgercore/database/memdb"
)

func TestUInt64Helpers(t *testing.T) {
	require := require.New(t)

	db := memdb.New()
	_, err := database.GetUInt64(db, []byte("missing"))
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(database.PutUInt64(db, []byte("k"), 424242))
	v, err := database.GetUInt64(db, []byte("k"))
	require.NoError(err)
	require.Equal(uint64(424242), v)
}
