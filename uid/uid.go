// Package uid maps internal 32-bit row identifiers to the 128-bit opaque
// identifiers exposed on the API boundary. The mapping is a bijection over
// the uint32 range: the integer occupies the first four bytes
// (little-endian, fixed so encoded values are identical on every platform)
// and the remaining twelve bytes are zero. Every identifier crossing the
// boundary, in either direction, goes through Encode or Decode.
package uid

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/vendq/vendq/fault"
)

// Encode wraps an internal identifier into its external UUID form.
func Encode(id uint32) uuid.UUID {
	var u uuid.UUID
	binary.LittleEndian.PutUint32(u[:4], id)
	return u
}

// Decode unwraps an external UUID back into the internal identifier.
// A UUID with any non-zero byte past offset 4 was not produced by Encode
// and is rejected outright, never truncated.
func Decode(u uuid.UUID) (uint32, error) {
	for _, b := range u[4:] {
		if b != 0 {
			return 0, fault.Newf(fault.InvalidIdentifierCode,
				"Identifier '%s' is not a valid record identifier.", u)
		}
	}
	return binary.LittleEndian.Uint32(u[:4]), nil
}
