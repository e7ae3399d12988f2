package storage_test

import (
	"testing"

	"github.com/jacobduba/sd18-isu/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorCodec_RoundTrip(t *testing.T) {
	vec := []float32{1, 0, -0.5, 0.7071068, 3.1415927e-5}

	blob := storage.EncodeVector(vec)
	assert.Len(t, blob, len(vec)*4)

	got, err := storage.DecodeVector(blob)
	require.NoError(t, err)
	assert.Equal(t, vec, got, "round-trip must be bit-identical for float32")
}

func TestVectorCodec_LittleEndian(t *testing.T) {
	blob := storage.EncodeVector([]float32{1})
	// IEEE-754 float32 1.0 is 0x3F800000, little-endian on the wire
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, blob)
}

func TestVectorCodec_RejectsTruncatedBlob(t *testing.T) {
	_, err := storage.DecodeVector([]byte{1, 2, 3})
	assert.Error(t, err)
}
