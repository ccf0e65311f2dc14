package section

// Magic is the little-endian "WDC3" signature at offset 0.
const Magic uint32 = 0x33434457

// fixed structure sizes in bytes
const (
	HeaderSize          = 72
	SectionHeaderSize   = 40
	FieldMetaSize       = 4
	ColumnMetaSize      = 24
	SparseEntrySize     = 6
	CopyEntrySize       = 8
	ReferenceHeaderSize = 12
	ReferenceEntrySize  = 8
	PalletValueSize     = 4
	CommonEntrySize     = 8
)
