package backstack

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/platform"
)

// frameRecord is the serialized form of one frame. Nil payloads stay nil
// through the round trip; absence means "never captured" and must not be
// coerced to empty.
type frameRecord struct {
	Key       string
	Hierarchy platform.HierarchyState
	Registry  platform.BundleMap
}

// Saved is a cache's full persisted state: one record per frame, tagged by
// compatibility key, order-independent. It round-trips through a gob-encoded
// binary blob suitable for the host's saved-state bundle or the store
// package.
type Saved struct {
	Frames map[string]frameRecord
}

// savedWire is the gob wire form of Saved; it carries no marshal methods so
// encoding it does not re-enter MarshalBinary/UnmarshalBinary.
type savedWire Saved

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Saved) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode((*savedWire)(s)); err != nil {
		return nil, fmt.Errorf("backstack: encode saved state: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Saved) UnmarshalBinary(data []byte) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode((*savedWire)(s)); err != nil {
		return fmt.Errorf("backstack: decode saved state: %w", err)
	}
	return nil
}

// Keys returns the compatibility keys present in the record, unordered.
func (s *Saved) Keys() []string {
	out := make([]string, 0, len(s.Frames))
	for k := range s.Frames {
		out = append(out, k)
	}
	return out
}

func (f *Frame) toRecord() frameRecord {
	return frameRecord{
		Key:       f.key,
		Hierarchy: f.hierarchyState.Clone(),
		Registry:  f.registryState.Clone(),
	}
}

func frameFromRecord(rec frameRecord) *Frame {
	return &Frame{
		key:            rec.Key,
		hierarchyState: rec.Hierarchy,
		registryState:  rec.Registry,
	}
}
