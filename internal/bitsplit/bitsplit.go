// Package bitsplit provides the bit-spreading primitive used to build Morton
// encoding lookup tables.
package bitsplit

// SplitByN maps the low bits of v to their "split" form: reading the result
// from the least significant bit upward in groups of stride bits, bit 0 of
// each group holds successive bits of v and the remaining stride-1 bits of
// each group are zero.
//
// Example: SplitByN(7, 3, 3) = 0b1001001 (73).
//
// bits is the number of least-significant bits of v to process and must be
// >= 1. v must not use more than bits bits; the result is meaningless
// otherwise (not checked).
func SplitByN(v uint64, bits, stride uint) uint64 {
	if bits == 1 {
		return v & 1
	}

	return SplitByN(v>>1, bits-1, stride)<<stride | v&1
}
