// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package linearcodec is the default codec.Codec implementation: a
// gob-backed encoder over a fixed set of registered concrete types. Each
// Marshal call encodes one value with a fresh gob encoder, so every blob
// carries its own gob type descriptions and fields are matched by name.
package linearcodec

import (
	"bytes"
	"encoding/gob"
	"sync"
)

// Codec registers concrete types so that interface-valued fields (the
// polymorphic transaction operation variant) can round-trip.
type Codec struct {
	mu        sync.Mutex
	registerd map[string]struct{}
}

// NewDefault returns an empty linear codec.
func NewDefault() *Codec {
	return &Codec{registerd: make(map[string]struct{})}
}

// RegisterType makes a concrete type encodable wherever it appears behind
// an interface. Must be called once per concrete type before any value of
// that type is marshaled or unmarshaled.
func (c *Codec) RegisterType(val interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	gob.Register(val)
	return nil
}

func (c *Codec) MarshalInto(value interface{}, dst *[]byte) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}
	*dst = append(*dst, buf.Bytes()...)
	return nil
}

func (c *Codec) Unmarshal(src []byte, dst interface{}) error {
	return gob.NewDecoder(bytes.NewReader(src)).Decode(dst)
}
