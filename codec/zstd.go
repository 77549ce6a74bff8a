package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Shared stateless encoder/decoder; EncodeAll/DecodeAll are safe for
// concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	if zstdEncoder, err = zstd.NewWriter(nil); err != nil {
		panic(fmt.Errorf("codec: zstd encoder init: %w", err))
	}
	if zstdDecoder, err = zstd.NewReader(nil); err != nil {
		panic(fmt.Errorf("codec: zstd decoder init: %w", err))
	}
}

// Zstd wraps another codec and zstd-compresses its output.
//
// Snapshots are small, but a compressed codec keeps object-store round-trips
// cheap for classrooms saving many sessions.
type Zstd struct {
	// Inner produces the uncompressed bytes. Nil means Default.
	Inner Codec
}

func (c Zstd) inner() Codec {
	if c.Inner == nil {
		return Default
	}
	return c.Inner
}

// Marshal encodes the value with the inner codec and compresses the result.
func (c Zstd) Marshal(v any) ([]byte, error) {
	b, err := c.inner().Marshal(v)
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(b, nil), nil
}

// Unmarshal decompresses the data and decodes it with the inner codec.
func (c Zstd) Unmarshal(data []byte, v any) error {
	b, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return err
	}
	return c.inner().Unmarshal(b, v)
}

// Name returns the compound codec name, e.g. "zstd+go-json".
func (c Zstd) Name() string { return "zstd+" + c.inner().Name() }
