// Package compress provides compression codecs for key-set block payloads.
//
// Compression is the second stage of the key-set pipeline: the keyset package
// first serializes sorted Morton keys (raw or delta-encoded), then hands the
// payload to one of these codecs. Delta encoding already shrinks clustered
// keys dramatically, so compression matters most for raw payloads and for
// blocks of spatially clustered coordinates, whose deltas are small and
// repetitive.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): bypass; for incompressible payloads or
//     when CPU matters more than size.
//   - Zstd (format.CompressionZstd): best ratio, moderate speed; for blocks
//     written once and stored.
//   - S2 (format.CompressionS2): fastest; for hot paths and transient blocks.
//   - LZ4 (format.CompressionLZ4): fast decompression, moderate ratio.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//
// All codecs are stateless values; internal encoder/decoder state is pooled
// and safe for concurrent use.
package compress
