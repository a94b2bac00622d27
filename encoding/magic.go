package encoding

// Magic-mask (parallel prefix) Morton encoding for the common 2D and 3D
// cases. These functions are table-free and branch-free alternatives to the
// LUT encoder: a handful of shift/mask rounds spread each field, so they need
// no construction step and no cache footprint. The LUT encoder remains the
// general-N implementation; these cover the fixed shapes where the masks are
// known constants.

// Spread2 spreads the 32 bits of v so that bit b of v lands on bit 2*b of the
// result, with zero bits between.
func Spread2(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<16) & 0x0000FFFF0000FFFF
	x = (x | x<<8) & 0x00FF00FF00FF00FF
	x = (x | x<<4) & 0x0F0F0F0F0F0F0F0F
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555

	return x
}

// Interleave2 returns the 2D Morton code of (x, y) with the full 32 bits of
// each input. Field x starts at bit 0 of the result, y at bit 1.
//
// Equivalent to a dimensions=2, fieldBits=32 LUT encoder without the table.
func Interleave2(x, y uint32) uint64 {
	return Spread2(x) | Spread2(y)<<1
}

// Spread3 spreads the low 21 bits of v so that bit b of v lands on bit 3*b of
// the result, with two zero bits between. Bits of v above the low 21 must be
// zero for a correct result (not checked).
func Spread3(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<32) & 0x001F00000000FFFF
	x = (x | x<<16) & 0x001F0000FF0000FF
	x = (x | x<<8) & 0x100F00F00F00F00F
	x = (x | x<<4) & 0x10C30C30C30C30C3
	x = (x | x<<2) & 0x1249249249249249

	return x
}

// Interleave3 returns the 3D Morton code of (x, y, z) with the low 21 bits of
// each input. Field x starts at bit 0 of the result, y at bit 1, z at bit 2.
//
// Equivalent to a dimensions=3, fieldBits=21 LUT encoder without the table.
func Interleave3(x, y, z uint32) uint64 {
	return Spread3(x) | Spread3(y)<<1 | Spread3(z)<<2
}
