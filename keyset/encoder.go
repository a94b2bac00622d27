package keyset

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/kevinhartman/morton-nd/compress"
	"github.com/kevinhartman/morton-nd/errs"
	"github.com/kevinhartman/morton-nd/format"
	"github.com/kevinhartman/morton-nd/internal/options"
	"github.com/kevinhartman/morton-nd/internal/pool"
)

// MaxKeyCount is the maximum number of keys a single block can hold.
const MaxKeyCount = math.MaxUint32

// Encoder builds a key-set block from Morton keys.
//
// Keys are accumulated with Add/AddSlice and serialized by Finish, which
// sorts them ascending (Z-order traversal order), applies the configured key
// encoding and compression, and prepends the block header.
//
// Note: The Encoder is NOT thread-safe. Each encoder instance should be used
// by a single goroutine at a time.
//
// Note: The Encoder is NOT reusable. After calling Finish, a new encoder must
// be created for further encoding.
type Encoder struct {
	header *Header
	keys   []uint64
	codec  compress.Codec

	finished bool
}

// EncoderOption represents a functional option for configuring the Encoder.
type EncoderOption = options.Option[*Encoder]

// WithLittleEndian sets the block byte order to little-endian (the default).
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Flag.WithLittleEndian()
	})
}

// WithBigEndian sets the block byte order to big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Flag.WithBigEndian()
	})
}

// WithKeyEncoding sets the key serialization type.
//
// format.TypeDelta (the default) stores the first key and ascending deltas as
// varints: compact for clustered keys. format.TypeRaw stores fixed 8-byte
// keys: larger, but supports constant-time random access via KeyAt.
func WithKeyEncoding(enc format.EncodingType) EncoderOption {
	return options.New(func(e *Encoder) error {
		return e.header.Flag.SetKeyEncoding(enc)
	})
}

// WithCompression sets the payload compression type.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		return e.header.Flag.SetCompression(comp)
	})
}

// WithProvenance records the encoder configuration (dimension count and
// per-field bit width) that produced the keys. The values are informational
// metadata carried in the header; they do not affect serialization.
func WithProvenance(dimensions, fieldBits uint8) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Dimensions = dimensions
		e.header.FieldBits = fieldBits
	})
}

// NewEncoder creates a key-set block encoder.
//
// Default configuration: little-endian, delta key encoding, no compression.
//
// Returns:
//   - *Encoder: New encoder instance ready for key accumulation
//   - error: Configuration error if invalid options provided
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		header: NewHeader(NewFlag()),
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(e.header.Flag.Compression(), "key payload")
	if err != nil {
		return nil, err
	}
	e.codec = codec

	return e, nil
}

// Add appends a single key to the block.
//
// Keys may be added in any order; Finish sorts them. Duplicates are kept.
//
// Panics if Finish has been called.
func (e *Encoder) Add(key uint64) {
	if e.finished {
		panic("keyset: encoder already finished - cannot add after Finish()")
	}

	e.keys = append(e.keys, key)
}

// AddSlice appends a slice of keys to the block.
//
// Panics if Finish has been called.
func (e *Encoder) AddSlice(keys []uint64) {
	if e.finished {
		panic("keyset: encoder already finished - cannot add after Finish()")
	}

	e.keys = append(e.keys, keys...)
}

// Len returns the number of keys accumulated so far.
func (e *Encoder) Len() int {
	return len(e.keys)
}

// Finish sorts the accumulated keys, serializes them and returns the
// completed block.
//
// The returned slice is newly allocated and owned by the caller. After
// Finish, the encoder is no longer usable; Add and Finish panic.
//
// Returns:
//   - []byte: The serialized block (header + compressed key payload)
//   - error: ErrKeyCountExceeded, or a compression error
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		panic("keyset: encoder already finished - cannot finish twice")
	}
	e.finished = true

	if uint64(len(e.keys)) > uint64(MaxKeyCount) {
		return nil, fmt.Errorf("%w: %d keys, max %d", errs.ErrKeyCountExceeded, len(e.keys), uint64(MaxKeyCount))
	}

	slices.Sort(e.keys)

	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	switch e.header.Flag.KeyEncoding() {
	case format.TypeRaw:
		e.appendRaw(buf)
	case format.TypeDelta:
		e.appendDelta(buf)
	default:
		// Unreachable: the flag setter validates the encoding.
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidKeyEncoding, e.header.Flag.KeyEncoding())
	}

	payload := buf.Bytes()
	e.header.KeyCount = uint32(len(e.keys))
	e.header.PayloadSize = uint32(len(payload))
	e.header.Digest = xxhash.Sum64(payload)

	compressed, err := e.codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress key payload: %w", err)
	}

	block := make([]byte, 0, HeaderSize+len(compressed))
	block = append(block, e.header.Bytes()...)
	block = append(block, compressed...)

	e.keys = nil

	return block, nil
}

// appendRaw serializes keys as fixed 8-byte values in block byte order.
func (e *Encoder) appendRaw(buf *pool.ByteBuffer) {
	engine := e.header.Flag.GetEndianEngine()

	buf.Grow(8 * len(e.keys))
	for _, key := range e.keys {
		buf.B = engine.AppendUint64(buf.B, key)
	}
}

// appendDelta serializes keys as a varint first key followed by varint
// deltas. Keys are sorted ascending at this point, so deltas are
// non-negative and zigzag encoding is unnecessary.
func (e *Encoder) appendDelta(buf *pool.ByteBuffer) {
	if len(e.keys) == 0 {
		return
	}

	// Estimate ~2 bytes per delta for clustered keys, plus the full first key.
	buf.Grow(2*len(e.keys) + binary.MaxVarintLen64)

	buf.B = binary.AppendUvarint(buf.B, e.keys[0])
	prev := e.keys[0]
	for _, key := range e.keys[1:] {
		buf.B = binary.AppendUvarint(buf.B, key-prev)
		prev = key
	}
}
