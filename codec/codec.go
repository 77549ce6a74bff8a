// Package codec centralizes snapshot payload encoding.
//
// Codec selection is a breaking-change boundary: persisted snapshots record
// the codec name in their header, and bytes written by one codec may not
// decode under another.
package codec

import (
	"fmt"
	"strings"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used by the library when none is configured.
var Default Codec = GoJSON{}

// ByName returns a built-in codec by its stable name. Compressed variants use
// a "<compression>+<inner>" name, e.g. "zstd+go-json".
//
// This is how self-describing snapshot files select their codec on load.
func ByName(name string) (Codec, bool) {
	if wrapper, inner, ok := strings.Cut(name, "+"); ok {
		base, found := ByName(inner)
		if !found {
			return nil, false
		}
		switch wrapper {
		case "zstd":
			return Zstd{Inner: base}, true
		case "lz4":
			return LZ4{Inner: base}, true
		default:
			return nil, false
		}
	}

	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
