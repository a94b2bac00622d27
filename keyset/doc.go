// Package keyset serializes batches of Morton keys into compact binary
// blocks.
//
// A key-set block is the storage/transport companion to the encoding
// package: encode coordinate tuples into keys, batch the keys into a block,
// and ship or persist the block. Because Morton keys preserve spatial
// locality, a sorted key set has small, repetitive deltas whenever the
// underlying coordinates cluster, and the block format exploits that.
//
// # Block Layout
//
// A block is a fixed 32-byte header followed by the key payload:
//
//	header:  magic, endianness, key encoding, compression, key count,
//	         provenance (dimensions/field bits), payload size, xxHash64 digest
//	payload: raw 8-byte keys, or varint first key + varint ascending deltas,
//	         optionally compressed (Zstd, S2, LZ4)
//
// Finish always sorts keys ascending, which is the Z-order traversal order
// consumers want and what makes delta encoding effective.
//
// # Usage
//
// Building a block:
//
//	enc, err := keyset.NewEncoder(
//	    keyset.WithCompression(format.CompressionS2),
//	    keyset.WithProvenance(2, 16),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, p := range points {
//	    enc.Add(morton.Encode(p.X, p.Y))
//	}
//	block, err := enc.Finish()
//
// Reading it back:
//
//	dec, err := keyset.NewDecoder(block)
//	if err != nil {
//	    return err
//	}
//	for key := range dec.All() {
//	    visit(key)
//	}
//
// Integrity problems (truncation, corruption, wrong format) are all detected
// by NewDecoder; iteration never fails.
package keyset
