package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

func TestByName(t *testing.T) {
	testCases := []struct {
		name  string
		want  string
		found bool
	}{
		{name: "json", want: "json", found: true},
		{name: "go-json", want: "go-json", found: true},
		{name: "zstd+go-json", want: "zstd+go-json", found: true},
		{name: "lz4+json", want: "lz4+json", found: true},
		{name: "zstd+lz4+go-json", want: "zstd+lz4+go-json", found: true},
		{name: "gzip+json", found: false},
		{name: "zstd+bogus", found: false},
		{name: "bogus", found: false},
		{name: "", found: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := ByName(tc.name)
			require.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.want, c.Name())
			}
		})
	}
}

func TestRoundtrip(t *testing.T) {
	in := payload{
		Name:   "wss",
		Values: []float64{1.5, -2.25, 0, 1e9},
	}

	codecs := []Codec{
		JSON{},
		GoJSON{},
		Zstd{},
		Zstd{Inner: JSON{}},
		LZ4{},
		LZ4{Inner: GoJSON{}},
		Zstd{Inner: LZ4{}},
	}

	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out payload
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)

			// The name must resolve back to an equivalent codec.
			byName, ok := ByName(c.Name())
			require.True(t, ok)

			var out2 payload
			require.NoError(t, byName.Unmarshal(data, &out2))
			assert.Equal(t, in, out2)
		})
	}
}

func TestZstdSharedStateInitialized(t *testing.T) {
	// Package init fails loudly on constructor errors, so the shared
	// encoder/decoder are always usable by the time any codec runs.
	require.NotNil(t, zstdEncoder)
	require.NotNil(t, zstdDecoder)

	data, err := Zstd{}.Marshal(payload{Name: "init"})
	require.NoError(t, err)

	var out payload
	require.NoError(t, Zstd{}.Unmarshal(data, &out))
	assert.Equal(t, "init", out.Name)
}

func TestUnmarshalGarbage(t *testing.T) {
	var out payload
	assert.Error(t, Zstd{}.Unmarshal([]byte("not compressed"), &out))
	assert.Error(t, LZ4{}.Unmarshal([]byte("not compressed"), &out))
	assert.Error(t, GoJSON{}.Unmarshal([]byte("{"), &out))
}

func TestMustMarshal(t *testing.T) {
	b := MustMarshal(nil, payload{Name: "x"})
	assert.NotEmpty(t, b)

	assert.Panics(t, func() {
		MustMarshal(GoJSON{}, make(chan int))
	})
}
