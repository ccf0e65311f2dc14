// Package compress provides the codecs for compressed table containers.
//
// Game clients and tooling often ship or cache WDC3 files inside a generic
// compression envelope. A table loader configured with a SourceCompression inflates
// the whole envelope with the matching codec before parsing the header.
//
// Supported codecs:
//   - format.SourceNone: pass-through
//   - format.SourceZstd: Zstandard frames (klauspost/compress, or valyala/gozstd with
//     the cgo and gozstd build tags)
//   - format.SourceS2: S2 blocks (klauspost/compress/s2)
//   - format.SourceLZ4: raw LZ4 blocks (pierrec/lz4)
//
// Usage:
//
//	codec, err := compress.GetCodec(format.SourceZstd)
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(payload)
//
// Built-in codecs are stateless values and safe for concurrent use.
package compress
