package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevinhartman/morton-nd/errs"
)

// interleaveRef is the slow, loop-based reference: bit b of field k lands on
// bit k + dims*b of the result.
func interleaveRef(fields []uint64, fieldBits uint) uint64 {
	var code uint64
	dims := uint(len(fields))
	for k, f := range fields {
		for b := uint(0); b < fieldBits; b++ {
			code |= (f >> b & 1) << (uint(k) + dims*b)
		}
	}

	return code
}

func TestNewEncoder_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		dims      uint
		fieldBits uint
		lutBits   uint
		wantErr   error
	}{
		{"zero dimensions", 0, 8, 4, errs.ErrInvalidDimensions},
		{"zero field bits", 2, 0, 4, errs.ErrInvalidFieldBits},
		{"zero lut bits", 2, 8, 0, errs.ErrInvalidLutBits},
		{"lut bits over 32", 2, 33, 33, errs.ErrInvalidLutBits},
		{"lut wider than field", 2, 4, 8, errs.ErrLutWiderThanField},
		{"lut value too wide", 4, 32, 17, errs.ErrLutValueTooWide},
		{"result exceeds 64 bits", 3, 22, 11, errs.ErrValueTypeTooNarrow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewEncoder[uint64](tt.dims, tt.fieldBits, tt.lutBits)
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, enc)
		})
	}
}

func TestNewEncoder_NarrowValueType(t *testing.T) {
	// 2 * 16 = 32 result bits do not fit in uint16.
	enc16, err := NewEncoder[uint16](2, 16, 8)
	require.ErrorIs(t, err, errs.ErrValueTypeTooNarrow)
	require.Nil(t, enc16)

	// The same configuration fits in uint32.
	enc32, err := NewEncoder[uint32](2, 16, 8)
	require.NoError(t, err)
	require.NotNil(t, enc32)

	// 2 * 4 = 8 result bits fit even in uint8.
	enc8, err := NewEncoder[uint8](2, 4, 2)
	require.NoError(t, err)
	require.EqualValues(t, 0xF, enc8.InputMask())
}

func TestEncoder_Accessors(t *testing.T) {
	enc, err := NewEncoder[uint64](3, 10, 4)
	require.NoError(t, err)

	require.Equal(t, uint(3), enc.Dimensions())
	require.Equal(t, uint(10), enc.FieldBits())
	require.Equal(t, uint(4), enc.LutBits())
	require.Equal(t, uint(3), enc.ChunkCount()) // ceil(10/4)
	require.Equal(t, 16, enc.TableSize())
	require.Equal(t, uint64(0x3FF), enc.InputMask())
}

func TestEncoder_Encode_ConcreteScenario(t *testing.T) {
	// dims=2, fieldBits=8, lutBits=4: Encode(5, 9) interleaves
	// 0b00000101 and 0b00001001 into 0b10010011.
	enc, err := NewEncoder[uint64](2, 8, 4)
	require.NoError(t, err)

	require.Equal(t, uint64(0b10010011), enc.Encode(5, 9))
	require.Equal(t, uint64(147), enc.Encode(5, 9))
}

func TestEncoder_Encode_ZeroIdentity(t *testing.T) {
	configs := []struct{ dims, fieldBits, lutBits uint }{
		{1, 8, 3},
		{2, 16, 8},
		{3, 10, 10},
		{4, 16, 4},
		{6, 10, 5},
	}

	for _, cfg := range configs {
		enc, err := NewEncoder[uint64](cfg.dims, cfg.fieldBits, cfg.lutBits)
		require.NoError(t, err)

		fields := make([]uint64, cfg.dims)
		require.Zero(t, enc.Encode(fields...))
	}
}

func TestEncoder_Encode_SingleBitLocality(t *testing.T) {
	// With only bit b of field k set, exactly bit k + dims*b of the result
	// is set.
	const dims, fieldBits, lutBits = 3, 10, 4

	enc, err := NewEncoder[uint64](dims, fieldBits, lutBits)
	require.NoError(t, err)

	for k := uint(0); k < dims; k++ {
		for b := uint(0); b < fieldBits; b++ {
			fields := make([]uint64, dims)
			fields[k] = 1 << b

			require.Equal(t, uint64(1)<<(k+dims*b), enc.Encode(fields...),
				"field %d bit %d", k, b)
		}
	}
}

func TestEncoder_Encode_MatchesReference(t *testing.T) {
	configs := []struct{ dims, fieldBits, lutBits uint }{
		{1, 8, 8},
		{2, 8, 4},
		{2, 8, 3}, // non-divisible: partial last chunk
		{3, 6, 6},
		{3, 7, 3}, // non-divisible
		{4, 5, 5},
		{5, 4, 3}, // non-divisible
	}

	for _, cfg := range configs {
		enc, err := NewEncoder[uint64](cfg.dims, cfg.fieldBits, cfg.lutBits)
		require.NoError(t, err)

		// Exhaustive for one sweeping field, fixed patterns for the rest.
		fields := make([]uint64, cfg.dims)
		for k := range fields {
			fields[k] = (uint64(0xA5A5A5A5) >> uint(k)) & uint64(enc.InputMask())
		}

		for sweep := uint(0); sweep < cfg.dims; sweep++ {
			for v := uint64(0); v <= uint64(enc.InputMask()); v += 7 {
				fields[sweep] = v
				require.Equal(t, interleaveRef(fields, cfg.fieldBits), enc.Encode(fields...),
					"dims=%d fieldBits=%d lutBits=%d fields=%v", cfg.dims, cfg.fieldBits, cfg.lutBits, fields)
			}
			fields[sweep] = uint64(enc.InputMask())
		}
	}
}

func TestEncoder_Encode_ChunkingInvariance(t *testing.T) {
	// For fixed dimensions and field width, the choice of lutBits changes
	// only table size and lookup count, never the code.
	const dims, fieldBits = 2, 16

	baseline, err := NewEncoder[uint64](dims, fieldBits, 16)
	require.NoError(t, err)

	inputs := [][]uint64{
		{0, 0},
		{1, 0},
		{0xFFFF, 0xFFFF},
		{0x1234, 0xABCD},
		{5, 9},
		{0x8000, 0x0001},
	}

	for _, lutBits := range []uint{1, 2, 3, 4, 5, 8, 11, 16} {
		enc, err := NewEncoder[uint64](dims, fieldBits, lutBits)
		require.NoError(t, err)

		for _, in := range inputs {
			require.Equal(t, baseline.Encode(in...), enc.Encode(in...),
				"lutBits=%d fields=%v", lutBits, in)
		}
	}
}

func TestEncoder_Encode_Deterministic(t *testing.T) {
	enc, err := NewEncoder[uint32](3, 10, 5)
	require.NoError(t, err)

	first := enc.Encode(0x3A5, 0x17C, 0x2F1&0x3FF)
	for range 10 {
		require.Equal(t, first, enc.Encode(0x3A5, 0x17C, 0x2F1&0x3FF))
	}
}

func TestEncoder_InputMask_Idempotent(t *testing.T) {
	enc, err := NewEncoder[uint64](2, 12, 6)
	require.NoError(t, err)

	mask := enc.InputMask()
	require.Equal(t, uint64(1)<<12-1, mask)

	for _, dirty := range []uint64{0, 0xFFFFFFFFFFFFFFFF, 0x123456789ABCDEF0} {
		once := dirty & mask
		require.Equal(t, once, once&mask)
		require.Equal(t, enc.Encode(once, once), enc.Encode(once&mask, once&mask))
	}
}

func TestEncoder_Encode_ResultBitsBounded(t *testing.T) {
	// Bits beyond dims * fieldBits stay zero for in-contract input.
	enc, err := NewEncoder[uint64](3, 5, 2)
	require.NoError(t, err)

	max := uint64(enc.InputMask())
	code := enc.Encode(max, max, max)
	require.Equal(t, uint64(1)<<(3*5)-1, code)
}

func TestEncoder_Encode_ArityPanics(t *testing.T) {
	enc, err := NewEncoder[uint64](2, 8, 4)
	require.NoError(t, err)

	require.Panics(t, func() { enc.Encode(1) })
	require.Panics(t, func() { enc.Encode(1, 2, 3) })
	require.NotPanics(t, func() { enc.Encode(1, 2) })
}

func TestEncoder_SharedInstanceConcurrentEncode(t *testing.T) {
	enc, err := NewEncoder[uint64](2, 16, 8)
	require.NoError(t, err)

	want := enc.Encode(0x1234, 0xABCD)

	done := make(chan struct{})
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 1000 {
				if enc.Encode(0x1234, 0xABCD) != want {
					t.Error("concurrent Encode produced a different code")
					return
				}
			}
		}()
	}
	for range 8 {
		<-done
	}
}
