package sparse

import (
	"encoding/hex"
	"fmt"
)

// Textual hex interchange. The flat hex form cannot represent gaps: export
// fails with ErrNotContiguous unless the addressed window is fully occupied
// (or empty). Flood or Fill the window first to export gapped content.

// ToHex encodes the addressed window as a lowercase hex string.
func (m *Memory) ToHex() (string, error) {
	data, err := m.ToBytes()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}

// FromHex decodes a hex string into a new memory holding one block at
// offset. An empty string yields an empty memory.
func FromHex(s string, offset int64) (*Memory, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return FromBytes(data, offset)
}
