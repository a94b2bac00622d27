package keyset

import (
	"github.com/kevinhartman/morton-nd/errs"
)

// HeaderSize is the fixed size of the key-set block header in bytes.
const HeaderSize = 32

// Header represents the fixed-size header at the start of a key-set block.
//
// Layout (offsets in bytes):
//
//	0-3   Flag (options uint16, key encoding, compression)
//	4-7   KeyCount
//	8     Dimensions (provenance, 0 if unspecified)
//	9     FieldBits (provenance, 0 if unspecified)
//	10-11 reserved
//	12-15 PayloadSize (uncompressed payload bytes)
//	16-23 Digest (xxHash64 of the uncompressed payload)
//	24-31 reserved
//
// All multi-byte fields except the options word follow the endianness
// recorded in the flag; the options word itself is always little-endian so a
// reader can learn the byte order from it.
type Header struct {
	// KeyCount is the number of keys stored in the block.
	KeyCount uint32
	// Dimensions records how many coordinate fields were interleaved per key.
	// Informational: decoding keys does not require it.
	Dimensions uint8
	// FieldBits records the per-field bit width used when encoding the keys.
	// Informational, like Dimensions.
	FieldBits uint8
	// PayloadSize is the size of the uncompressed key payload in bytes.
	PayloadSize uint32
	// Digest is the xxHash64 of the uncompressed key payload.
	Digest uint64

	// Flag is the packed options field.
	Flag Flag
}

// NewHeader creates a Header with the given flag and zeroed counters.
// Counters and digest are filled in by the encoder's Finish.
func NewHeader(flag Flag) *Header {
	return &Header{Flag: flag}
}

// Parse parses the header from a byte slice.
//
// Returns ErrInvalidHeaderSize if data is shorter than HeaderSize, or flag
// validation errors.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The options word is always little-endian; it determines the byte order
	// of everything after it.
	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.EncodingType = data[2]
	h.Flag.CompressionType = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.KeyCount = engine.Uint32(data[4:8])
	h.Dimensions = data[8]
	h.FieldBits = data[9]
	h.PayloadSize = engine.Uint32(data[12:16])
	h.Digest = engine.Uint64(data[16:24])

	return nil
}

// Bytes serializes the Header into a byte slice of HeaderSize bytes.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.EncodingType
	b[3] = h.Flag.CompressionType
	engine.PutUint32(b[4:8], h.KeyCount)
	b[8] = h.Dimensions
	b[9] = h.FieldBits
	engine.PutUint32(b[12:16], h.PayloadSize)
	engine.PutUint64(b[16:24], h.Digest)

	return b
}
