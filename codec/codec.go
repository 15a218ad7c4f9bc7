// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package codec provides versioned canonical serialization for everything
// that crosses a trust boundary: signed transactions, committed outputs,
// and staking records. A Manager maps a version prefix to the Codec that
// produced it, so the wire format can evolve without breaking replay of
// already-committed history.
package codec

import (
	"encoding/binary"
	"errors"
)

var (
	ErrUnknownVersion  = errors.New("codec: unknown version")
	ErrAlreadyVersioned = errors.New("codec: version already registered")
)

// Codec marshals and unmarshals values to/from a canonical byte
// representation, without the version prefix a Manager adds.
type Codec interface {
	MarshalInto(value interface{}, dst *[]byte) error
	Unmarshal(src []byte, dst interface{}) error
}

// Manager multiplexes several codec versions behind one Marshal/Unmarshal
// pair, prefixing every encoded blob with a 2-byte big-endian version.
type Manager interface {
	RegisterCodec(version uint16, codec Codec) error
	Marshal(version uint16, value interface{}) ([]byte, error)
	Unmarshal(b []byte, dst interface{}) (version uint16, err error)
}

type manager struct {
	codecs map[uint16]Codec
}

// NewDefaultManager returns an empty Manager.
func NewDefaultManager() Manager {
	return &manager{codecs: make(map[uint16]Codec)}
}

func (m *manager) RegisterCodec(version uint16, codec Codec) error {
	if _, ok := m.codecs[version]; ok {
		return ErrAlreadyVersioned
	}
	m.codecs[version] = codec
	return nil
}

func (m *manager) Marshal(version uint16, value interface{}) ([]byte, error) {
	c, ok := m.codecs[version]
	if !ok {
		return nil, ErrUnknownVersion
	}
	dst := make([]byte, 2, 64)
	binary.BigEndian.PutUint16(dst, version)
	if err := c.MarshalInto(value, &dst); err != nil {
		return nil, err
	}
	return dst, nil
}

func (m *manager) Unmarshal(b []byte, dst interface{}) (uint16, error) {
	if len(b) < 2 {
		return 0, ErrUnknownVersion
	}
	version := binary.BigEndian.Uint16(b)
	c, ok := m.codecs[version]
	if !ok {
		return 0, ErrUnknownVersion
	}
	return version, c.Unmarshal(b[2:], dst)
}
