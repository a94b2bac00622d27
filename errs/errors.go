// Package errs defines the sentinel errors shared across morton-nd packages.
//
// Callers can match these with errors.Is even when the returning package has
// wrapped them with additional context via fmt.Errorf("%w: ...").
package errs

import "errors"

// Encoder configuration errors, reported once at construction time.
// An encoder is never produced in a partially-valid state.
var (
	// ErrInvalidDimensions indicates a dimension count of zero.
	ErrInvalidDimensions = errors.New("dimensions must be > 0")

	// ErrInvalidFieldBits indicates a field width of zero.
	ErrInvalidFieldBits = errors.New("field bits must be > 0")

	// ErrInvalidLutBits indicates a lookup width of zero or greater than 32.
	ErrInvalidLutBits = errors.New("lut bits must be in range 1..32")

	// ErrLutWiderThanField indicates a lookup width exceeding the field width.
	ErrLutWiderThanField = errors.New("lut bits must be <= field bits")

	// ErrLutValueTooWide indicates that dimensions * lut bits does not fit in
	// a 64-bit table entry or the native word width.
	ErrLutValueTooWide = errors.New("dimensions * lut bits exceeds table entry width")

	// ErrValueTypeTooNarrow indicates that the encoder's value type cannot
	// hold dimensions * field bits result bits.
	ErrValueTypeTooNarrow = errors.New("value type too narrow for encoding result")
)

// Key-set block errors, reported when building or parsing key-set blocks.
var (
	// ErrInvalidHeaderSize indicates a block shorter than the fixed header.
	ErrInvalidHeaderSize = errors.New("invalid key-set header size")

	// ErrInvalidMagic indicates that the header magic number does not match.
	ErrInvalidMagic = errors.New("invalid key-set magic number")

	// ErrInvalidKeyEncoding indicates an unknown key encoding type in the header.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding type")

	// ErrInvalidCompression indicates an unknown compression type.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrDigestMismatch indicates that the payload digest does not match the
	// digest recorded in the header.
	ErrDigestMismatch = errors.New("key payload digest mismatch")

	// ErrTruncatedPayload indicates that the payload ends before the recorded
	// key count has been decoded.
	ErrTruncatedPayload = errors.New("truncated key payload")

	// ErrKeyCountExceeded indicates that a single block cannot hold the
	// requested number of keys.
	ErrKeyCountExceeded = errors.New("key count exceeds block capacity")
)
