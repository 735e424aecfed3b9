package uid

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/vendq/vendq/fault"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 42, 255, 256, 65535, 1 << 24, math.MaxUint32 - 1, math.MaxUint32}

	for _, v := range values {
		u := Encode(v)

		for i := 4; i < len(u); i++ {
			if u[i] != 0 {
				t.Fatalf("Encode(%d) produced non-zero byte at offset %d: %v", v, i, u)
			}
		}

		got, err := Decode(u)
		if err != nil {
			t.Fatalf("Decode(Encode(%d)) returned error: %v", v, err)
		}
		if got != v {
			t.Fatalf("Decode(Encode(%d)) = %d", v, got)
		}
	}
}

func TestEncodeIsLittleEndian(t *testing.T) {
	u := Encode(0x04030201)
	want := [4]byte{0x01, 0x02, 0x03, 0x04}
	if [4]byte(u[:4]) != want {
		t.Fatalf("Encode(0x04030201) first bytes = %v, want %v", u[:4], want)
	}
}

func TestDecodeRejectsDirtyHighBytes(t *testing.T) {
	for offset := 4; offset < 16; offset++ {
		var u uuid.UUID
		u[0] = 7
		u[offset] = 1

		_, err := Decode(u)
		if err == nil {
			t.Fatalf("Decode accepted non-zero byte at offset %d", offset)
		}

		var f fault.Fault
		if !errors.As(err, &f) || f.Code() != fault.InvalidIdentifierCode {
			t.Fatalf("Decode error for offset %d has wrong code: %v", offset, err)
		}
	}
}

func TestDecodeRandomUUIDRejected(t *testing.T) {
	// Random v4 UUIDs always carry version bits in byte 6, so they can
	// never pass the all-zero check.
	for i := 0; i < 16; i++ {
		if _, err := Decode(uuid.New()); err == nil {
			t.Fatal("Decode accepted a random UUID")
		}
	}
}
