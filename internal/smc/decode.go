package smc

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Reading is the raw result of a key read. Only the first Size bytes of
// Bytes are meaningful.
type Reading struct {
	Type  DataType
	Size  uint32
	Bytes [32]byte
}

// Payload returns the meaningful prefix of the reading.
func (r Reading) Payload() []byte {
	n := r.Size
	if n > uint32(len(r.Bytes)) {
		n = uint32(len(r.Bytes))
	}
	return r.Bytes[:n]
}

// Decode converts a reading to a number according to its type tag.
// Unknown tags and payloads shorter than the tag's layout yield false.
func Decode(r Reading) (float64, bool) {
	b := r.Payload()
	switch r.Type {
	case TypeSP78:
		if len(b) < 2 {
			return 0, false
		}
		return float64(int16(binary.BigEndian.Uint16(b))) / 256, true
	case TypeFP88:
		if len(b) < 2 {
			return 0, false
		}
		return float64(binary.BigEndian.Uint16(b)) / 256, true
	case TypeFLT, TypeIOFT:
		if len(b) < 4 {
			return 0, false
		}
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), true
	case TypeUI8:
		if len(b) < 1 {
			return 0, false
		}
		return float64(b[0]), true
	}
	return 0, false
}

// Describe renders a reading for diagnostics. Integer types without a
// temperature scale are shown raw.
func Describe(r Reading) string {
	if v, ok := Decode(r); ok {
		if r.Type == TypeUI8 {
			return fmt.Sprintf("%d°C", int(v))
		}
		return fmt.Sprintf("%.2f°C", v)
	}
	b := r.Payload()
	switch r.Type {
	case TypeSP78, TypeFP88, TypeFLT, TypeIOFT, TypeUI8:
		return "?"
	case TypeUI16:
		if len(b) < 2 {
			return "?"
		}
		return fmt.Sprintf("%d°C (raw)", binary.BigEndian.Uint16(b))
	case TypeSI16:
		if len(b) < 2 {
			return "?"
		}
		return fmt.Sprintf("%d°C (raw)", int16(binary.BigEndian.Uint16(b)))
	}
	return "unknown type"
}

// Hex formats the payload as space separated upper-case byte pairs.
func Hex(r Reading) string {
	b := r.Payload()
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02X", c)
	}
	return strings.Join(parts, " ")
}
