package modal

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/platform"
)

// modalRecord is one window's persisted snapshot: the identity key of the
// rendering it was showing plus its state bundle.
type modalRecord struct {
	Key   string
	State platform.Bundle
}

// SavedModals is a container's full persisted state: one record per open
// window, in window order. Position is significant.
type SavedModals struct {
	Windows []modalRecord
}

// savedModalsWire is the gob wire form of SavedModals; it carries no marshal
// methods so encoding it does not re-enter MarshalBinary/UnmarshalBinary.
type savedModalsWire SavedModals

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *SavedModals) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode((*savedModalsWire)(s)); err != nil {
		return nil, fmt.Errorf("modal: encode saved state: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *SavedModals) UnmarshalBinary(data []byte) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode((*savedModalsWire)(s)); err != nil {
		return fmt.Errorf("modal: decode saved state: %w", err)
	}
	return nil
}
