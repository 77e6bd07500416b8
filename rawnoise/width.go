package rawnoise

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// WordWidth is the size of one sample record in the source.
type WordWidth int

const (
	Width32 WordWidth = 4
	Width64 WordWidth = 8
)

// ParseWordWidth accepts bits ("32", "64"), type names ("u32", "u64") or
// byte sizes ("4", "8").
func ParseWordWidth(s string) (WordWidth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "32", "u32", "uint32", "4":
		return Width32, nil
	case "64", "u64", "uint64", "8":
		return Width64, nil
	default:
		return 0, fmt.Errorf("unknown word width %q (want 32 or 64)", s)
	}
}

// Size returns the width in bytes.
func (w WordWidth) Size() int { return int(w) }

// Bits returns the width in bits.
func (w WordWidth) Bits() int { return int(w) * 8 }

// String returns the string representation of the width
func (w WordWidth) String() string {
	switch w {
	case Width32:
		return "u32"
	case Width64:
		return "u64"
	default:
		return fmt.Sprintf("WordWidth(%d)", int(w))
	}
}

func (w WordWidth) valid() bool {
	return w == Width32 || w == Width64
}

// Decode reads one sample from the start of b in host byte order.
// b must hold at least Size() bytes.
func (w WordWidth) Decode(b []byte) uint64 {
	if w == Width32 {
		return uint64(binary.NativeEndian.Uint32(b))
	}
	return binary.NativeEndian.Uint64(b)
}

// Sub returns a-b modulo 2^Bits().
func (w WordWidth) Sub(a, b uint64) uint64 {
	if w == Width32 {
		return uint64(uint32(a) - uint32(b))
	}
	return a - b
}
