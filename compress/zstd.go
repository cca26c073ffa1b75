package compress

// ZstdCodec compresses to and from Zstandard frames.
//
// Two implementations exist: a cgo-backed one built on valyala/gozstd and a
// pure-Go fallback built on klauspost/compress/zstd. Both produce standard
// zstd frames, so data written by one is readable by the other. The build
// tag "cgo" selects the implementation.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstandard codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
