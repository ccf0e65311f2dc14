package compress

// ZstdCompressor handles Zstandard table containers.
//
// The pure Go implementation from klauspost/compress is used by default. Building
// with cgo and the gozstd tag switches to valyala/gozstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
