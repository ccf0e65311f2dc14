package table

import (
	"github.com/arloliu/wdc3/endian"
	"github.com/arloliu/wdc3/format"
	"github.com/arloliu/wdc3/section"
)

// bitWriter packs values LSB-first into little-endian bytes.
type bitWriter struct {
	buf []byte
	pos int
}

func (w *bitWriter) write(v uint64, n int) *bitWriter {
	for i := range n {
		idx := w.pos >> 3
		for len(w.buf) <= idx {
			w.buf = append(w.buf, 0)
		}
		if (v>>i)&1 == 1 {
			w.buf[idx] |= 1 << (w.pos & 7)
		}
		w.pos++
	}

	return w
}

// cstring appends a null-terminated string at the next byte boundary.
func (w *bitWriter) cstring(s string) *bitWriter {
	w.buf = append(w.buf[:(w.pos+7)>>3], s...)
	w.buf = append(w.buf, 0)
	w.pos = len(w.buf) * 8

	return w
}

// bytes returns the packed bytes zero-padded to at least size.
func (w *bitWriter) bytes(size int) []byte {
	out := make([]byte, max(size, len(w.buf)))
	copy(out, w.buf)

	return out
}

// testColumn is one column of a synthetic table.
type testColumn struct {
	fieldBits int16
	meta      section.ColumnMeta
	pallet    []uint32
	common    []commonPair
}

type commonPair struct {
	id    int32
	value uint32
}

func noneColumn(width int, size int) testColumn {
	return testColumn{
		fieldBits: int16(32 - width),
		meta: section.ColumnMeta{
			Size:        uint16(size),
			Compression: format.CompressionNone,
		},
	}
}

func immediateColumn(kind format.CompressionType, width int) testColumn {
	return testColumn{
		meta: section.ColumnMeta{
			Size:        uint16(width),
			Compression: kind,
			Words:       [3]uint32{0, uint32(width), 0},
		},
	}
}

func commonColumn(def uint32, pairs ...commonPair) testColumn {
	return testColumn{
		meta: section.ColumnMeta{
			Size:               32,
			Compression:        format.CompressionCommon,
			AdditionalDataSize: uint32(len(pairs) * section.CommonEntrySize),
			Words:              [3]uint32{def, 0, 0},
		},
		common: pairs,
	}
}

func palletColumn(kind format.CompressionType, width, card int, pallet ...uint32) testColumn {
	return testColumn{
		meta: section.ColumnMeta{
			Size:               uint16(width),
			Compression:        kind,
			AdditionalDataSize: uint32(len(pallet) * section.PalletValueSize),
			Words:              [3]uint32{0, uint32(width), uint32(card)},
		},
		pallet: pallet,
	}
}

// testSection is one physical section of a synthetic table.
type testSection struct {
	tactKey   uint64
	records   [][]byte
	strings   []byte
	index     []int32
	copies    []commonPair
	refs      []section.ReferenceEntry
	sparseIDs []int32
}

// testFile builds a WDC3 file in the wire layout.
type testFile struct {
	header   section.Header
	columns  []testColumn
	sections []testSection
	// quirkPad writes the spurious block of the legacy sparse fixture.
	quirkPad bool
}

func newTestFile(recordSize int, columns ...testColumn) *testFile {
	return &testFile{
		header: section.Header{
			Magic:      section.Magic,
			RecordSize: int32(recordSize),
		},
		columns: columns,
	}
}

func (f *testFile) sparse() *testFile {
	f.header.Flags |= format.FlagSparse
	return f
}

func (f *testFile) idField(idx uint16) *testFile {
	f.header.IDFieldIndex = idx
	return f
}

func (f *testFile) minIndex(v int32) *testFile {
	f.header.MinIndex = v
	return f
}

func (f *testFile) add(s testSection) *testFile {
	f.sections = append(f.sections, s)
	return f
}

func (f *testFile) bytes() []byte {
	engine := endian.GetLittleEndianEngine()
	h := f.header
	h.FieldCount = int32(len(f.columns))
	h.TotalFieldCount = h.FieldCount
	h.SectionCount = int32(len(f.sections))
	h.ColumnMetaDataSize = int32(len(f.columns) * section.ColumnMetaSize)
	h.RecordCount = 0
	h.StringTableSize = 0
	h.PalletDataSize = 0
	h.CommonDataSize = 0
	for _, s := range f.sections {
		h.RecordCount += int32(len(s.records))
		h.StringTableSize += int32(len(s.strings))
	}
	for _, c := range f.columns {
		h.PalletDataSize += int32(len(c.pallet) * section.PalletValueSize)
		h.CommonDataSize += int32(len(c.common) * section.CommonEntrySize)
	}

	var meta []byte
	for _, c := range f.columns {
		meta = section.FieldMeta{Bits: c.fieldBits}.Append(meta)
	}
	for _, c := range f.columns {
		meta = c.meta.Append(meta)
	}
	for _, c := range f.columns {
		for _, v := range c.pallet {
			meta = engine.AppendUint32(meta, v)
		}
	}
	for _, c := range f.columns {
		for _, p := range c.common {
			meta = engine.AppendUint32(meta, uint32(p.id))
			meta = engine.AppendUint32(meta, p.value)
		}
	}

	offset := section.HeaderSize + len(f.sections)*section.SectionHeaderSize + len(meta)
	headers := make([]byte, 0, len(f.sections)*section.SectionHeaderSize)
	var payloads []byte
	for _, s := range f.sections {
		sh, payload := f.section(s, offset)
		headers = append(headers, sh.Bytes()...)
		payloads = append(payloads, payload...)
		offset += len(payload)
	}

	out := h.Bytes()
	out = append(out, headers...)
	out = append(out, meta...)
	out = append(out, payloads...)

	return out
}

func (f *testFile) section(s testSection, fileOffset int) (section.SectionHeader, []byte) {
	engine := endian.GetLittleEndianEngine()
	sparse := f.header.IsSparse()

	sh := section.SectionHeader{
		TactKeyLookup:  s.tactKey,
		FileOffset:     int32(fileOffset),
		RecordCount:    int32(len(s.records)),
		IndexDataSize:  int32(len(s.index) * 4),
		CopyTableCount: int32(len(s.copies)),
	}

	var b []byte
	for _, rec := range s.records {
		b = append(b, rec...)
	}
	if sparse {
		sh.OffsetRecordsEnd = int32(fileOffset + len(b))
		sh.OffsetMapIDCount = int32(len(s.records))
	} else {
		sh.StringTableSize = int32(len(s.strings))
		b = append(b, s.strings...)
	}

	for _, id := range s.index {
		b = engine.AppendUint32(b, uint32(id))
	}
	for _, c := range s.copies {
		b = engine.AppendUint32(b, uint32(c.id))
		b = engine.AppendUint32(b, c.value)
	}

	if sparse {
		if f.quirkPad {
			b = append(b, make([]byte, 4*len(s.records))...)
		}
		recordOffset := fileOffset
		for _, rec := range s.records {
			b = section.SparseEntry{Offset: uint32(recordOffset), Size: uint16(len(rec))}.Append(b)
			recordOffset += len(rec)
		}
	}

	if s.refs != nil {
		sh.ParentLookupDataSize = int32(section.ReferenceHeaderSize + len(s.refs)*section.ReferenceEntrySize)
		b = engine.AppendUint32(b, uint32(len(s.refs)))
		b = engine.AppendUint32(b, 0)
		b = engine.AppendUint32(b, 0)
		for _, r := range s.refs {
			b = r.Append(b)
		}
	}

	if sparse {
		ids := s.sparseIDs
		if ids == nil {
			ids = make([]int32, len(s.records))
		}
		for _, id := range ids {
			b = engine.AppendUint32(b, uint32(id))
		}
	}

	return sh, b
}

// stringRef returns the stored value of a dense string field that must resolve to
// blob offset k. Record i of total records has the field at byte pos.
func stringRef(k, i, total, recordSize, pos int) uint64 {
	return uint64(uint32(int32(k + (total-i)*recordSize - pos)))
}
