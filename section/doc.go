// Package section defines the low-level binary structures and constants of the WDC3 table format.
//
// This package provides the fixed-size records that describe the physical layout of a WDC3
// (.db2) file: the file header, section headers, field and column metadata, sparse offset
// entries and reference (foreign key) entries. Each type parses from and appends to
// little-endian bytes; the decoding of record contents lives in the table package.
//
// # File Structure
//
// A WDC3 file is a fixed header and metadata block followed by one payload per section:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (72 bytes, fixed)                                │
//	├─────────────────────────────────────────────────────────┤
//	│ Section Headers (SectionCount × 40 bytes)               │
//	├─────────────────────────────────────────────────────────┤
//	│ Field Meta (TotalFieldCount × 4 bytes)                  │
//	├─────────────────────────────────────────────────────────┤
//	│ Column Meta (FieldCount × 24 bytes)                     │
//	├─────────────────────────────────────────────────────────┤
//	│ Pallet Data (per Pallet/PalletArray column, u32 values) │
//	├─────────────────────────────────────────────────────────┤
//	│ Common Data (per Common column, (id, value) pairs)      │
//	├─────────────────────────────────────────────────────────┤
//	│ Section Payloads (at SectionHeader.FileOffset)          │
//	│  - Records (dense: RecordCount × RecordSize)            │
//	│  - String blob (dense only)                             │
//	│  - Index data (u32 ids)                                 │
//	│  - Copy table ((new id, source id) pairs)               │
//	│  - Sparse offset entries (sparse only, 6 bytes each)    │
//	│  - Reference data (count, min, max, (id, index) pairs)  │
//	│  - Sparse id list (sparse only)                         │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
// Header (72 bytes):
//
//	Bytes  | Field              | Type   | Description
//	-------|--------------------|--------|----------------------------------
//	0-3    | Magic              | uint32 | "WDC3"
//	4-7    | RecordCount        | int32  | Records across all sections
//	8-11   | FieldCount         | int32  | Column meta entries
//	12-15  | RecordSize         | int32  | Dense record stride in bytes
//	16-19  | StringTableSize    | int32  | Total string blob size
//	20-23  | TableHash          | uint32 | Table identity
//	24-27  | LayoutHash         | uint32 | Schema identity
//	28-31  | MinIndex           | int32  | Lowest record id
//	32-35  | MaxIndex           | int32  | Highest record id
//	36-39  | Locale             | int32  |
//	40-41  | Flags              | uint16 | Bit 0: sparse layout
//	42-43  | IDFieldIndex       | uint16 | Column holding an inline id
//	44-47  | TotalFieldCount    | int32  | Field meta entries
//	48-51  | PackedDataOffset   | int32  |
//	52-55  | LookupColumnCount  | int32  |
//	56-59  | ColumnMetaDataSize | int32  |
//	60-63  | CommonDataSize     | int32  |
//	64-67  | PalletDataSize     | int32  |
//	68-71  | SectionCount       | int32  |
//
// # Section Header Format
//
// SectionHeader (40 bytes):
//
//	Bytes  | Field                | Type   | Description
//	-------|----------------------|--------|----------------------------------
//	0-7    | TactKeyLookup        | uint64 | Non-zero when the section is keyed
//	8-11   | FileOffset           | int32  | Start of the payload
//	12-15  | RecordCount          | int32  |
//	16-19  | StringTableSize      | int32  |
//	20-23  | OffsetRecordsEnd     | int32  | Sparse records end offset
//	24-27  | IndexDataSize        | int32  | Bytes of index data
//	28-31  | ParentLookupDataSize | int32  | Bytes of reference data
//	32-35  | OffsetMapIDCount     | int32  | Sparse entries
//	36-39  | CopyTableCount       | int32  |
//
// A keyed section whose record bytes are all zero carries no readable rows.
//
// # Column Meta Format
//
// ColumnMeta (24 bytes): RecordOffset (uint16), Size (uint16), AdditionalDataSize (uint32),
// Compression (uint32) and three kind-specific words. See ColumnMeta for their meaning.
//
// # Byte Order
//
// All multi-byte values are little-endian. Use endian.GetLittleEndianEngine for the
// helpers in this package.
//
// # Thread Safety
//
// All types in this package are plain value types and are safe for concurrent reads.
package section
