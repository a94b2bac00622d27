// Package encoding implements N-dimensional Morton (Z-order) encoding.
//
// A Morton code interleaves the bits of several coordinate fields into one
// integer, so that values close together in N-dimensional space tend to be
// close together as integers. That makes Morton codes useful as sortable keys
// for spatial indexes, quadtrees/octrees, and cache-friendly traversal orders.
//
// # LUT encoder
//
// Encoder is the general-N implementation. It precomputes, at construction
// time, a table mapping every possible lutBits-wide chunk value to its
// bit-spread form, then encodes by chunking each field, looking each chunk up,
// and composing the results with shifts, so there is no per-bit loop at
// call time.
//
//	enc, err := encoding.NewEncoder[uint64](3, 21, 11)
//	if err != nil {
//	    return err
//	}
//	code := enc.Encode(x, y, z)
//
// Configuration trade-off: the table has 2^lutBits entries and Encode performs
// Dimensions * ChunkCount lookups. Small tables favor random inputs (cache),
// large tables favor clustered inputs (fewer lookups). Benchmark for
// performance-critical workloads.
//
// All configuration problems are rejected by NewEncoder; Encode itself has no
// runtime error conditions. Inputs wider than the configured field width are a
// contract violation that silently yields a wrong code. Use InputMask to
// sanitize dirty inputs first.
//
// # Magic-mask encoders
//
// Spread2/Interleave2 and Spread3/Interleave3 cover the fixed 2D and 3D
// shapes with constant-mask parallel prefix operations instead of a table.
// They produce identical codes to equivalently configured LUT encoders.
//
// # Presets
//
// The root mortonnd package provides ready-made configurations for the common
// 2D/3D, 32/64-bit cases.
//
// # Thread Safety
//
// An Encoder is immutable after construction; concurrent Encode calls on a
// shared instance are safe. The magic-mask functions are pure.
package encoding
