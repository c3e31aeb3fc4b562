package engine

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SavedStateSize is the encoded size of SavedState.
const SavedStateSize = 12

// SavedState is what survives the activity being killed: the last touch
// position in precision-scaled units and the magnitude of the last X axis.
type SavedState struct {
	Value float32
	X, Y  int32
}

// MarshalBinary encodes s as three little-endian 32-bit words.
func (s SavedState) MarshalBinary() ([]byte, error) {
	buf := make([]byte, SavedStateSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(s.Value))
	binary.LittleEndian.PutUint32(buf[4:], uint32(s.X))
	binary.LittleEndian.PutUint32(buf[8:], uint32(s.Y))
	return buf, nil
}

// UnmarshalBinary decodes a payload produced by MarshalBinary.
func (s *SavedState) UnmarshalBinary(p []byte) error {
	if len(p) != SavedStateSize {
		return fmt.Errorf("saved state: got %d bytes, want %d", len(p), SavedStateSize)
	}
	s.Value = math.Float32frombits(binary.LittleEndian.Uint32(p[0:]))
	s.X = int32(binary.LittleEndian.Uint32(p[4:]))
	s.Y = int32(binary.LittleEndian.Uint32(p[8:]))
	return nil
}
