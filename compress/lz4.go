package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression for key payloads.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
//
// Uses a pooled lz4.Compressor for better performance.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, dstSize)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// CompressBlock signals incompressible input with n == 0. Emit a
		// literal-only block instead so Decompress still round-trips.
		return literalBlock(data), nil
	}

	return dst[:n], nil
}

// literalBlock builds an LZ4 block holding data as a single literal run.
func literalBlock(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/255+2)

	if len(data) < 15 {
		out = append(out, byte(len(data))<<4)
	} else {
		out = append(out, 0xF0)
		for rem := len(data) - 15; ; rem -= 255 {
			if rem < 255 {
				out = append(out, byte(rem))
				break
			}
			out = append(out, 255)
		}
	}

	return append(out, data...)
}

// Decompress decompresses LZ4 block data.
//
// The decompressed size is not stored in the block format, so the buffer
// starts at 4x the compressed size and doubles on
// ErrInvalidSourceShortBuffer, up to a 128MB safety limit.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024 // 128MB safety limit

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	// Buffer exceeded maxSize: likely corrupted data or an unreasonable ratio.
	return nil, lz4.ErrInvalidSourceShortBuffer
}
