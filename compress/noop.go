package compress

// NoOpCompressor bypasses data without compression.
//
// Useful for benchmarking encoder overhead in isolation, and for payloads
// that are already dense (raw high-entropy keys compress poorly anyway).
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input data directly without copying.
//
// The returned slice shares the input's underlying memory; callers must not
// modify the input after calling this method if they use the result.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data directly without copying.
//
// The returned slice shares the input's underlying memory; callers must not
// modify the input after calling this method if they use the result.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
