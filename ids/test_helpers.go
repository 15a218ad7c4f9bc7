// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import "crypto/rand"

// GenerateTestID returns a random ID for use in tests.
func GenerateTestID() ID {
	var id ID
	_, _ = rand.Read(id[:])
	return id
}

// GenerateTestShortID returns a random ShortID for use in tests.
func GenerateTestShortID() ShortID {
	var id ShortID
	_, _ = rand.Read(id[:])
	return id
}

// GenerateTestNodeID returns a random NodeID for use in tests.
func GenerateTestNodeID() NodeID {
	return NodeID(GenerateTestShortID())
}
