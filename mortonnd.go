// Package mortonnd provides fast, configurable N-dimensional Morton (Z-order)
// encoding.
//
// The heavy lifting lives in the encoding package: a lookup-table based
// encoder for arbitrary dimension counts and field widths, plus constant-mask
// encoders for the fixed 2D and 3D shapes. This package provides ready-made
// configurations for the common cases.
//
// # Basic Usage
//
// Encoding 3D coordinates into a 64-bit sortable key:
//
//	enc := mortonnd.New3D64()
//
//	// Inputs must not use more than 21 least-significant bits each.
//	code := enc.Encode(x, y, z)
//
// Custom configurations go through the encoding package directly:
//
//	enc, err := encoding.NewEncoder[uint64](5, 12, 6)
//
// # Key-set blocks
//
// The keyset package batches encoded keys into sorted, compressed,
// checksummed binary blocks for storage or transmission:
//
//	kenc, _ := keyset.NewEncoder(keyset.WithCompression(format.CompressionS2))
//	kenc.Add(enc.Encode(x, y, z))
//	block, _ := kenc.Finish()
//
// # Input Contract
//
// Encoders never sanitize their inputs: a field using more bits than the
// configuration allows produces a silently wrong code. Use InputMask to clear
// stray high bits first:
//
//	code := enc.Encode(x&enc.InputMask(), y&enc.InputMask(), z&enc.InputMask())
package mortonnd

import (
	"github.com/kevinhartman/morton-nd/encoding"
)

// Preset configurations for the common 2D/3D cases. The lutBits choices keep
// tables small enough to stay cache-resident while minimizing lookups per
// call; applications with unusual access patterns can tune their own via
// encoding.NewEncoder.

// New2D32 creates a 2D encoder producing 32-bit codes.
//
// Inputs must not use more than 16 least-significant bits. Uses an 8-bit
// lookup width: a 256-entry table and 4 lookups per call.
//
// The returned encoder is immutable and safe for concurrent use; construct
// one and reuse it rather than rebuilding per call site.
func New2D32() *encoding.Encoder[uint32] {
	return mustEncoder(encoding.NewEncoder[uint32](2, 16, 8))
}

// New2D64 creates a 2D encoder producing 64-bit codes.
//
// Inputs must not use more than 32 least-significant bits. Uses an 11-bit
// lookup width: a 2048-entry table and 6 lookups per call.
func New2D64() *encoding.Encoder[uint64] {
	return mustEncoder(encoding.NewEncoder[uint64](2, 32, 11))
}

// New3D32 creates a 3D encoder producing 32-bit codes.
//
// Inputs must not use more than 10 least-significant bits. Uses a 10-bit
// lookup width: a single lookup per field.
func New3D32() *encoding.Encoder[uint32] {
	return mustEncoder(encoding.NewEncoder[uint32](3, 10, 10))
}

// New3D64 creates a 3D encoder producing 64-bit codes.
//
// Inputs must not use more than 21 least-significant bits. Uses an 11-bit
// lookup width: a 2048-entry table and 6 lookups per call.
func New3D64() *encoding.Encoder[uint64] {
	return mustEncoder(encoding.NewEncoder[uint64](3, 21, 11))
}

// mustEncoder unwraps preset construction. Preset parameters are statically
// valid, so err is always nil.
func mustEncoder[T encoding.Unsigned](enc *encoding.Encoder[T], err error) *encoding.Encoder[T] {
	if err != nil {
		panic(err)
	}

	return enc
}
