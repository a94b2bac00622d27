package compress

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevinhartman/morton-nd/format"
)

// deltaLikePayload simulates a delta-encoded key payload: many small values
// with occasional larger gaps. This is what the codecs see in practice.
func deltaLikePayload(n int) []byte {
	rng := rand.New(rand.NewSource(42)) //nolint: gosec
	data := make([]byte, 0, n)
	for len(data) < n {
		if rng.Intn(10) == 0 {
			data = append(data, byte(rng.Intn(256)), byte(rng.Intn(256)))
		} else {
			data = append(data, byte(rng.Intn(16)))
		}
	}

	return data[:n]
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ct, "key payload")
		require.NoError(t, err, "compression type %s", ct)
		require.NotNil(t, codec)
	}
}

func TestCreateCodec_Invalid(t *testing.T) {
	codec, err := CreateCodec(format.CompressionType(0xFF), "key payload")
	require.Error(t, err)
	require.Nil(t, codec)
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionS2)
	require.NoError(t, err)
	require.NotNil(t, codec)

	_, err = GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestCodecs_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":      {},
		"tiny":       {0x01},
		"delta-like": deltaLikePayload(4096),
		"zeros":      make([]byte, 1024),
	}

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, payload := range payloads {
			compressed, err := codec.Compress(payload)
			require.NoError(t, err, "%s/%s compress", ct, name)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err, "%s/%s decompress", ct, name)

			if len(payload) == 0 {
				require.Empty(t, decompressed)
			} else {
				require.Equal(t, payload, decompressed, "%s/%s", ct, name)
			}
		}
	}
}

func TestCodecs_CompressRepetitiveData(t *testing.T) {
	// Repetitive small deltas should compress well with every real codec.
	payload := deltaLikePayload(16 * 1024)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload), "codec %s", ct)
	}
}

func TestLZ4_RoundTripsIncompressibleData(t *testing.T) {
	codec := NewLZ4Compressor()
	rng := rand.New(rand.NewSource(42)) //nolint: gosec

	for _, size := range []int{1, 14, 15, 270, 4096} {
		payload := make([]byte, size)
		rng.Read(payload)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.NotEmpty(t, compressed)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, payload, decompressed, "size=%d", size)
	}
}

func TestNoOp_SharesInput(t *testing.T) {
	codec := NewNoOpCompressor()
	data := []byte{1, 2, 3}

	out, err := codec.Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0], "noop must not copy")
}

func TestZstd_RejectsGarbage(t *testing.T) {
	codec := NewZstdCompressor()
	_, err := codec.Decompress([]byte("not a zstd frame"))
	require.Error(t, err)
}
