package keyset

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/cespare/xxhash/v2"

	"github.com/kevinhartman/morton-nd/compress"
	"github.com/kevinhartman/morton-nd/errs"
	"github.com/kevinhartman/morton-nd/format"
)

// Decoder reads keys back out of a serialized key-set block.
//
// NewDecoder validates the header, decompresses the payload and verifies its
// digest up front, so iteration itself cannot fail. The Decoder is immutable
// after construction and safe for concurrent reads.
type Decoder struct {
	header  Header
	payload []byte
}

// NewDecoder creates a Decoder for the given block.
//
// Returns:
//   - *Decoder: The decoder, with the payload decompressed and verified
//   - error: ErrInvalidHeaderSize, ErrInvalidMagic, ErrInvalidKeyEncoding,
//     ErrInvalidCompression, ErrTruncatedPayload, ErrDigestMismatch, or a
//     decompression error
func NewDecoder(data []byte) (*Decoder, error) {
	d := &Decoder{}

	if err := d.header.Parse(data); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(d.header.Flag.Compression())
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(data[HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("decompress key payload: %w", err)
	}

	if uint32(len(payload)) != d.header.PayloadSize {
		return nil, fmt.Errorf("%w: payload %d bytes, header records %d",
			errs.ErrTruncatedPayload, len(payload), d.header.PayloadSize)
	}

	if xxhash.Sum64(payload) != d.header.Digest {
		return nil, errs.ErrDigestMismatch
	}

	switch d.header.Flag.KeyEncoding() {
	case format.TypeRaw:
		if need := uint64(d.header.KeyCount) * 8; uint64(len(payload)) < need {
			return nil, fmt.Errorf("%w: %d raw keys need %d bytes, payload has %d",
				errs.ErrTruncatedPayload, d.header.KeyCount, need, len(payload))
		}
	case format.TypeDelta:
		if err := validateDeltaPayload(payload, d.header.KeyCount); err != nil {
			return nil, err
		}
	}

	d.payload = payload

	return d, nil
}

// Count returns the number of keys in the block.
func (d *Decoder) Count() int {
	return int(d.header.KeyCount)
}

// Dimensions returns the dimension count recorded in the block header, or 0
// if the producer did not record provenance.
func (d *Decoder) Dimensions() uint8 {
	return d.header.Dimensions
}

// FieldBits returns the per-field bit width recorded in the block header, or
// 0 if the producer did not record provenance.
func (d *Decoder) FieldBits() uint8 {
	return d.header.FieldBits
}

// KeyEncoding returns the key serialization type of the block.
func (d *Decoder) KeyEncoding() format.EncodingType {
	return d.header.Flag.KeyEncoding()
}

// All returns an iterator yielding the block's keys in ascending order.
//
// Iteration allocates nothing and can be abandoned early:
//
//	for key := range decoder.All() {
//	    if key > bound {
//	        break
//	    }
//	    visit(key)
//	}
func (d *Decoder) All() iter.Seq[uint64] {
	switch d.header.Flag.KeyEncoding() {
	case format.TypeRaw:
		return d.allRaw()
	case format.TypeDelta:
		return d.allDelta()
	default:
		// Unreachable: the header was validated at construction.
		return func(func(uint64) bool) {}
	}
}

// Keys decodes the whole block into a freshly allocated slice.
func (d *Decoder) Keys() []uint64 {
	keys := make([]uint64, 0, d.Count())
	for key := range d.All() {
		keys = append(keys, key)
	}

	return keys
}

// KeyAt returns the key at the given index.
//
// Raw blocks support constant-time access; delta blocks decode sequentially
// up to the index. For scanning many keys, prefer All.
//
// Returns:
//   - uint64: The key at the index
//   - bool: false if the index is out of range
func (d *Decoder) KeyAt(index int) (uint64, bool) {
	if index < 0 || index >= d.Count() {
		return 0, false
	}

	if d.header.Flag.KeyEncoding() == format.TypeRaw {
		engine := d.header.Flag.GetEndianEngine()
		offset := index * 8

		return engine.Uint64(d.payload[offset : offset+8]), true
	}

	i := 0
	for key := range d.allDelta() {
		if i == index {
			return key, true
		}
		i++
	}

	return 0, false
}

func (d *Decoder) allRaw() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		engine := d.header.Flag.GetEndianEngine()
		count := d.Count()

		for i := 0; i < count; i++ {
			if !yield(engine.Uint64(d.payload[i*8 : i*8+8])) {
				return
			}
		}
	}
}

func (d *Decoder) allDelta() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		count := d.Count()
		if count == 0 {
			return
		}

		key, offset, ok := decodeUvarint(d.payload, 0)
		if !ok || !yield(key) {
			return
		}

		for produced := 1; produced < count; produced++ {
			delta, next, ok := decodeUvarint(d.payload, offset)
			if !ok {
				return
			}
			offset = next

			key += delta
			if !yield(key) {
				return
			}
		}
	}
}

// validateDeltaPayload walks the payload's varints once and checks that the
// recorded key count is actually backed by data. Catching a short or forged
// payload here keeps the iteration guarantees intact and bounds the
// count-sized allocation in Keys.
func validateDeltaPayload(payload []byte, keyCount uint32) error {
	offset := 0
	for decoded := uint32(0); decoded < keyCount; decoded++ {
		_, next, ok := decodeUvarint(payload, offset)
		if !ok {
			return fmt.Errorf("%w: payload ends after %d of %d delta keys",
				errs.ErrTruncatedPayload, decoded, keyCount)
		}
		offset = next
	}

	return nil
}

// decodeUvarint decodes a uint64 varint from data starting at offset, with a
// fast path for single-byte values (the common case for clustered deltas).
func decodeUvarint(data []byte, offset int) (uint64, int, bool) {
	if offset >= len(data) {
		return 0, offset, false
	}

	b0 := data[offset]
	if b0 < 0x80 {
		return uint64(b0), offset + 1, true
	}

	value, n := binary.Uvarint(data[offset:])
	if n <= 0 {
		return 0, offset, false
	}

	return value, offset + n, true
}
