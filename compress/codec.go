package compress

import (
	"fmt"

	"github.com/arloliu/wdc3/format"
)

// Compressor compresses a whole table file.
//
// The returned slice is owned by the caller.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor inflates a compressed table file.
//
// Implementations must be safe for concurrent use. The returned slice is owned by the
// caller and may alias data for the no-op codec.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a Codec for the specified source compression.
//
// Parameters:
//   - compression: Source compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compression format.SourceCompression, target string) (Codec, error) {
	switch compression {
	case format.SourceNone:
		return NewNoOpCompressor(), nil
	case format.SourceZstd:
		return NewZstdCompressor(), nil
	case format.SourceS2:
		return NewS2Compressor(), nil
	case format.SourceLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compression)
	}
}

var builtinCodecs = map[format.SourceCompression]Codec{
	format.SourceNone: NewNoOpCompressor(),
	format.SourceZstd: NewZstdCompressor(),
	format.SourceS2:   NewS2Compressor(),
	format.SourceLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified source compression.
func GetCodec(compression format.SourceCompression) (Codec, error) {
	if codec, ok := builtinCodecs[compression]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported source compression: %s", compression)
}
