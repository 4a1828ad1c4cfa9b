package sender

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Codec serializes reports for network sinks.
type Codec interface {
	Name() string
	Marshal(r *Report) ([]byte, error)
}

// NewCodec returns the codec for an Encoding setting. Empty means json.
func NewCodec(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return jsonCodec{}, nil
	case "cbor":
		em, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return nil, fmt.Errorf("cbor encoder: %w", err)
		}
		return cborCodec{em: em}, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q: must be \"json\" or \"cbor\"", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(r *Report) ([]byte, error) {
	return json.Marshal(r)
}

// cborCodec emits deterministic CBOR, so identical reports encode to
// identical bytes.
type cborCodec struct {
	em cbor.EncMode
}

func (cborCodec) Name() string { return "cbor" }

func (c cborCodec) Marshal(r *Report) ([]byte, error) {
	return c.em.Marshal(r)
}
