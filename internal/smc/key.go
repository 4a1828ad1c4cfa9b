// Package smc talks to the Apple System Management Controller through its
// IOKit user client and decodes the values it returns.
package smc

import "fmt"

// Key is a four-character SMC code packed big-endian into a uint32.
type Key uint32

// ParseKey packs a four-character SMC key such as "TC0P".
func ParseKey(s string) (Key, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("smc key %q: must be exactly 4 bytes", s)
	}
	return Key(fourCC(s)), nil
}

// MustKey is like ParseKey but panics on a malformed key. Use for constants.
func MustKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func (k Key) String() string {
	return fourCCString(uint32(k))
}

// DataType is the four-character type tag the SMC reports for a key.
type DataType uint32

// Data types with a known numeric decoding.
const (
	TypeSP78 DataType = 's'<<24 | 'p'<<16 | '7'<<8 | '8'
	TypeFP88 DataType = 'f'<<24 | 'p'<<16 | '8'<<8 | '8'
	TypeFLT  DataType = 'f'<<24 | 'l'<<16 | 't'<<8 | ' '
	TypeIOFT DataType = 'i'<<24 | 'o'<<16 | 'f'<<8 | 't'
	TypeUI8  DataType = 'u'<<24 | 'i'<<16 | '8'<<8 | ' '
	TypeUI16 DataType = 'u'<<24 | 'i'<<16 | '1'<<8 | '6'
	TypeSI16 DataType = 's'<<24 | 'i'<<16 | '1'<<8 | '6'
)

func (t DataType) String() string {
	return fourCCString(uint32(t))
}

func fourCC(s string) uint32 {
	var v uint32
	for i := 0; i < 4 && i < len(s); i++ {
		v = v<<8 | uint32(s[i])
	}
	return v
}

func fourCCString(v uint32) string {
	return string([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}
