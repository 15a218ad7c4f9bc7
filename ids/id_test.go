// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDRoundTrip(t *testing.T) {
	require := require.New(t)

	id := GenerateTestID()
	b := id.Bytes()
	got, err := ToID(b)
	require.NoError(err)
	require.Equal(id, got)
}

func TestShortIDRoundTrip(t *testing.T) {
	require := require.New(t)

	id := GenerateTestShortID()
	got, err := ToShortID(id.Bytes())
	require.NoError(err)
	require.Equal(id, got)
}

func TestToIDBadLength(t *testing.T) {
	_, err := ToID([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestFromHashDeterministic(t *testing.T) {
	require := require.New(t)

	a := FromHash([]byte("same content"))
	b := FromHash([]byte("same content"))
	require.Equal(a, b)

	c := FromHash([]byte("different content"))
	require.NotEqual(a, c)
}
