package compress

// NoOpCodec bypasses data without compression. The returned slices share the
// input's underlying memory.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a codec that passes data through unchanged.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns the input data as-is.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data as-is.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
