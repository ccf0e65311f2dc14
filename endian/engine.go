// Package endian provides the byte order used to read WDC3 structures.
//
// WDC3 files are always little-endian. The EndianEngine interface combines
// binary.ByteOrder and binary.AppendByteOrder so the same value can read
// wire structures and, in tests, build them.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by the WDC3 format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
