package compress

// ZstdCompressor provides Zstandard compression for key payloads.
//
// Zstd trades compression speed for ratio, making it the right choice when
// blocks are written once and stored or shipped over constrained links.
// Delta-encoded key payloads of clustered coordinates compress particularly
// well.
//
// Two implementations exist behind build tags, mirroring the dependency's
// deployment trade-off: a cgo binding (valyala/gozstd) and a pure-Go fallback
// (klauspost/compress/zstd) used when cgo is unavailable.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
