package keyset

import (
	"fmt"

	"github.com/kevinhartman/morton-nd/endian"
	"github.com/kevinhartman/morton-nd/errs"
	"github.com/kevinhartman/morton-nd/format"
)

const (
	// MagicKeySetV1Opt is the magic number identifying key-set block format v1,
	// stored in bits 4-15 of the flag options field.
	MagicKeySetV1Opt uint16 = 0x5A10 // 0b0101_1010_0001_0000

	// MagicNumberMask extracts the magic number from the options field.
	MagicNumberMask uint16 = 0xFFF0

	// EndiannessMask extracts the endianness bit from the options field.
	EndiannessMask uint16 = 0x0001

	littleEndianFlag uint16 = 0x0000
	bigEndianFlag    uint16 = 0x0001
)

// Flag represents the packed flag field at the start of a key-set header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 1-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the block format:
	//   - 0x5A10: key-set block format v1
	Options uint16

	// EncodingType is an enum indicating the key serialization (raw or delta).
	EncodingType uint8
	// CompressionType is an enum indicating the payload compression.
	CompressionType uint8
}

var (
	validKeyEncodings = map[uint8]struct{}{
		uint8(format.TypeRaw):   {},
		uint8(format.TypeDelta): {},
	}

	validCompressions = map[uint8]struct{}{
		uint8(format.CompressionNone): {},
		uint8(format.CompressionZstd): {},
		uint8(format.CompressionS2):   {},
		uint8(format.CompressionLZ4):  {},
	}
)

// NewFlag creates a new Flag with default settings: little-endian, delta key
// encoding, no compression.
func NewFlag() Flag {
	return Flag{
		Options:         MagicKeySetV1Opt | littleEndianFlag,
		EncodingType:    uint8(format.TypeDelta),
		CompressionType: uint8(format.CompressionNone),
	}
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber checks if the magic number is valid.
func (f Flag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicKeySetV1Opt
}

// IsLittleEndian returns whether the block uses little-endian byte order.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == littleEndianFlag
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= bigEndianFlag
}

// GetEndianEngine returns the endian engine matching the endianness flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}

// KeyEncoding returns the key serialization type.
func (f Flag) KeyEncoding() format.EncodingType {
	return format.EncodingType(f.EncodingType)
}

// SetKeyEncoding sets the key serialization type.
func (f *Flag) SetKeyEncoding(enc format.EncodingType) error {
	if _, ok := validKeyEncodings[uint8(enc)]; !ok {
		return fmt.Errorf("%w: %s", errs.ErrInvalidKeyEncoding, enc)
	}
	f.EncodingType = uint8(enc)

	return nil
}

// Compression returns the payload compression type.
func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the payload compression type.
func (f *Flag) SetCompression(comp format.CompressionType) error {
	if _, ok := validCompressions[uint8(comp)]; !ok {
		return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, comp)
	}
	f.CompressionType = uint8(comp)

	return nil
}

// Validate checks if the flag contains valid values.
func (f Flag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidMagic
	}

	if _, ok := validKeyEncodings[f.EncodingType]; !ok {
		return fmt.Errorf("%w: %#02x", errs.ErrInvalidKeyEncoding, f.EncodingType)
	}

	if _, ok := validCompressions[f.CompressionType]; !ok {
		return fmt.Errorf("%w: %#02x", errs.ErrInvalidCompression, f.CompressionType)
	}

	return nil
}
