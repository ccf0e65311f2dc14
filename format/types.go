package format

import (
	"fmt"
	"strings"
)

type (
	// CompressionType is the per-column compression kind stored in column metadata.
	CompressionType uint32
	// SourceCompression is the codec wrapping a whole table file, if any.
	SourceCompression uint8
	// Flags is the header flag word.
	Flags uint16
	// FieldType is the primitive type of a schema slot.
	FieldType uint8
)

const (
	CompressionNone            CompressionType = 0 // CompressionNone stores the value inline using the field meta bit count.
	CompressionImmediate       CompressionType = 1 // CompressionImmediate stores an unsigned bit-packed value.
	CompressionCommon          CompressionType = 2 // CompressionCommon stores no bits; values come from an id keyed map.
	CompressionPallet          CompressionType = 3 // CompressionPallet stores an index into the pallet table.
	CompressionPalletArray     CompressionType = 4 // CompressionPalletArray stores an index into a pallet of fixed arrays.
	CompressionSignedImmediate CompressionType = 5 // CompressionSignedImmediate stores a sign-extended bit-packed value.
)

const (
	SourceNone SourceCompression = 0x1 // SourceNone reads the stream as-is.
	SourceZstd SourceCompression = 0x2 // SourceZstd inflates a Zstandard container.
	SourceS2   SourceCompression = 0x3 // SourceS2 inflates an S2 block.
	SourceLZ4  SourceCompression = 0x4 // SourceLZ4 inflates an LZ4 frame.
)

const (
	FlagSparse       Flags = 0x01 // FlagSparse marks variable length records with inline strings.
	FlagSecondaryKey Flags = 0x02
	FlagIndex        Flags = 0x04
	FlagUnknown1     Flags = 0x08
	FlagBitPacked    Flags = 0x10
)

const (
	TypeU8 FieldType = iota + 1
	TypeI8
	TypeU16
	TypeI16
	TypeU32
	TypeI32
	TypeU64
	TypeI64
	TypeF32
	TypeString
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionImmediate:
		return "Immediate"
	case CompressionCommon:
		return "Common"
	case CompressionPallet:
		return "Pallet"
	case CompressionPalletArray:
		return "PalletArray"
	case CompressionSignedImmediate:
		return "SignedImmediate"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(c))
	}
}

// UsesPallet reports whether the column reads its values from pallet data.
func (c CompressionType) UsesPallet() bool {
	return c == CompressionPallet || c == CompressionPalletArray
}

func (s SourceCompression) String() string {
	switch s {
	case SourceNone:
		return "None"
	case SourceZstd:
		return "Zstd"
	case SourceS2:
		return "S2"
	case SourceLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseSourceCompression maps a case-insensitive codec name to its SourceCompression.
func ParseSourceCompression(name string) (SourceCompression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return SourceNone, nil
	case "zstd":
		return SourceZstd, nil
	case "s2":
		return SourceS2, nil
	case "lz4":
		return SourceLZ4, nil
	default:
		return 0, fmt.Errorf("unknown source compression %q", name)
	}
}

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// IsSparse reports whether records use the sparse (offset map) layout.
func (f Flags) IsSparse() bool {
	return f.Has(FlagSparse)
}

func (t FieldType) String() string {
	switch t {
	case TypeU8:
		return "u8"
	case TypeI8:
		return "i8"
	case TypeU16:
		return "u16"
	case TypeI16:
		return "i16"
	case TypeU32:
		return "u32"
	case TypeI32:
		return "i32"
	case TypeU64:
		return "u64"
	case TypeI64:
		return "i64"
	case TypeF32:
		return "f32"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Bits returns the element width in bits; 0 for strings and unknown types.
func (t FieldType) Bits() int {
	switch t {
	case TypeU8, TypeI8:
		return 8
	case TypeU16, TypeI16:
		return 16
	case TypeU32, TypeI32, TypeF32:
		return 32
	case TypeU64, TypeI64:
		return 64
	default:
		return 0
	}
}

// IsSigned reports whether the type is a signed integer.
func (t FieldType) IsSigned() bool {
	return t == TypeI8 || t == TypeI16 || t == TypeI32 || t == TypeI64
}

// IsNumeric reports whether the type is an integer or float.
func (t FieldType) IsNumeric() bool {
	return t >= TypeU8 && t <= TypeF32
}

// ParseFieldType maps the short type names used by String back to a FieldType.
func ParseFieldType(name string) (FieldType, error) {
	switch strings.ToLower(name) {
	case "u8", "byte":
		return TypeU8, nil
	case "i8", "sbyte":
		return TypeI8, nil
	case "u16":
		return TypeU16, nil
	case "i16":
		return TypeI16, nil
	case "u32":
		return TypeU32, nil
	case "i32", "int":
		return TypeI32, nil
	case "u64":
		return TypeU64, nil
	case "i64":
		return TypeI64, nil
	case "f32", "float":
		return TypeF32, nil
	case "string", "str":
		return TypeString, nil
	default:
		return 0, fmt.Errorf("unknown field type %q", name)
	}
}
