package encoding

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/kevinhartman/morton-nd/errs"
	"github.com/kevinhartman/morton-nd/internal/bitsplit"
)

// Unsigned is the constraint for encoder value types. It covers the unsigned
// integer types wide enough to be useful as Morton codes; signedness is ruled
// out at compile time rather than checked at construction.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Encoder is a lookup-table based N-dimensional Morton encoder.
//
// An Encoder is configured once with a dimension count, a per-field bit width
// and a lookup width, and builds its table at construction time. After that it
// is immutable: concurrent calls to Encode on a shared instance are safe
// without locking.
//
// The type parameter T is both the input field type and the result type. It
// must be wide enough to hold dimensions * fieldBits bits; NewEncoder rejects
// configurations where it is not.
//
// Instances do not share tables, even for identical configurations. Building
// a table is cheap (2^lutBits entries) but callers encoding in a hot path
// should construct one Encoder and reuse it.
type Encoder[T Unsigned] struct {
	table []T

	dims      uint
	fieldBits uint
	lutBits   uint

	chunkCount uint
	chunkStep  uint // dims * lutBits, the per-chunk shift distance
	chunkMask  T
	inputMask  T
}

// NewEncoder creates a Morton encoder for the given configuration and builds
// its lookup table.
//
// Parameters:
//   - dimensions: number of coordinate fields interleaved per code (> 0)
//   - fieldBits: number of least-significant bits used from each field (> 0)
//   - lutBits: number of field bits consumed per table lookup (1..32, <= fieldBits)
//
// The generated table has 2^lutBits entries, and Encode performs
// dimensions * ceil(fieldBits/lutBits) lookups per call. A larger lutBits
// trades table size (and cache footprint) for fewer lookups; for most
// configurations lutBits around 8-11 is a good balance.
//
// Returns:
//   - *Encoder[T]: The constructed encoder, ready for Encode calls.
//   - error: A configuration error from the errs package; no encoder is
//     produced in that case.
func NewEncoder[T Unsigned](dimensions, fieldBits, lutBits uint) (*Encoder[T], error) {
	if dimensions == 0 {
		return nil, errs.ErrInvalidDimensions
	}
	if fieldBits == 0 {
		return nil, errs.ErrInvalidFieldBits
	}
	if lutBits == 0 || lutBits > 32 {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidLutBits, lutBits)
	}
	if lutBits > fieldBits {
		return nil, fmt.Errorf("%w: lut bits %d, field bits %d", errs.ErrLutWiderThanField, lutBits, fieldBits)
	}

	// Table entries hold one spread chunk per field, dimensions * lutBits bits
	// wide. They are stored as T and composed through uint-sized shifts, so
	// both limits apply.
	lutValueWidth := dimensions * lutBits
	if lutValueWidth > 64 || lutValueWidth > uint(bits.UintSize) {
		return nil, fmt.Errorf("%w: dimensions %d, lut bits %d", errs.ErrLutValueTooWide, dimensions, lutBits)
	}

	var zero T
	valueWidth := uint(unsafe.Sizeof(zero)) * 8
	if dimensions*fieldBits > valueWidth {
		return nil, fmt.Errorf("%w: need %d bits, have %d", errs.ErrValueTypeTooNarrow, dimensions*fieldBits, valueWidth)
	}

	e := &Encoder[T]{
		dims:       dimensions,
		fieldBits:  fieldBits,
		lutBits:    lutBits,
		chunkCount: 1 + (fieldBits-1)/lutBits,
		chunkStep:  dimensions * lutBits,
		chunkMask:  T(1)<<lutBits - 1,
		inputMask:  T(1)<<fieldBits - 1,
	}

	e.table = make([]T, 1<<lutBits)
	for i := range e.table {
		e.table[i] = T(bitsplit.SplitByN(uint64(i), lutBits, dimensions))
	}

	return e, nil
}

// Encode calculates the Morton encoding of the given fields by interleaving
// their bits. Field 0 occupies the least significant bit of every
// dimensions-wide group of the result, field 1 the next bit, and so on:
//
//	Encode(xxxx, yyyy, zzzz) => zyxzyxzyxzyx
//
// Exactly Dimensions() fields must be supplied; any other arity is a
// programmer error and panics. Each field must not use more than FieldBits()
// least-significant bits. Apply InputMask first if inputs may be dirty.
// Violating that contract silently produces a wrong code; Encode never checks
// or fails at runtime.
func (e *Encoder[T]) Encode(fields ...T) T {
	if uint(len(fields)) != e.dims {
		panic(fmt.Sprintf("morton-nd: Encode called with %d fields, encoder configured for %d", len(fields), e.dims))
	}

	// Compose from the highest field down so each completed field lands one
	// bit left of the next. Table entries already place field bits at group
	// offset 0.
	code := e.lookupField(fields[e.dims-1])
	for k := int(e.dims) - 2; k >= 0; k-- {
		code = code<<1 | e.lookupField(fields[k])
	}

	return code
}

// lookupField spreads one field by table lookups, lowest chunk first.
// The chunk mask keeps every table index in range, so a partial final chunk
// of a non-divisible fieldBits/lutBits configuration needs no special case.
func (e *Encoder[T]) lookupField(field T) T {
	code := e.table[field&e.chunkMask]
	for c := uint(1); c < e.chunkCount; c++ {
		field >>= e.lutBits
		code |= e.table[field&e.chunkMask] << (c * e.chunkStep)
	}

	return code
}

// InputMask returns (1 << FieldBits()) - 1, the mask that clears the bits of
// an input field above the configured field width.
//
// Encode does not sanitize its inputs; callers whose inputs may carry stray
// high bits apply this mask themselves first.
func (e *Encoder[T]) InputMask() T {
	return e.inputMask
}

// Dimensions returns the number of fields interleaved per code.
func (e *Encoder[T]) Dimensions() uint {
	return e.dims
}

// FieldBits returns the number of least-significant bits encoded per field.
func (e *Encoder[T]) FieldBits() uint {
	return e.fieldBits
}

// LutBits returns the number of field bits consumed per table lookup.
func (e *Encoder[T]) LutBits() uint {
	return e.lutBits
}

// ChunkCount returns the number of table lookups performed per field, i.e.
// ceil(FieldBits / LutBits). Useful when tuning LutBits for a workload.
func (e *Encoder[T]) ChunkCount() uint {
	return e.chunkCount
}

// TableSize returns the number of entries in the lookup table (2^LutBits).
func (e *Encoder[T]) TableSize() int {
	return len(e.table)
}
