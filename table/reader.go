package table

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/arloliu/wdc3/compress"
	"github.com/arloliu/wdc3/errs"
	"github.com/arloliu/wdc3/format"
	"github.com/arloliu/wdc3/internal/bitio"
	"github.com/arloliu/wdc3/internal/collision"
	"github.com/arloliu/wdc3/internal/hash"
	"github.com/arloliu/wdc3/internal/options"
	"github.com/arloliu/wdc3/internal/pool"
	"github.com/arloliu/wdc3/internal/stream"
	"github.com/arloliu/wdc3/section"
)

// densePadding is the zeroed slack appended to dense record bytes.
const densePadding = 8

// Read loads a table from r. The whole stream is read into memory first.
func Read(r io.Reader, opts ...Option) (*Table, error) {
	buf := pool.GetSourceBuffer()
	defer pool.PutSourceBuffer(buf)

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("read table source: %w", err)
	}

	return Load(buf.Bytes(), opts...)
}

// Load parses a table from data. The returned table does not reference data.
func Load(data []byte, opts ...Option) (*Table, error) {
	cfg := NewLoaderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.source != format.SourceNone {
		codec, err := compress.GetCodec(cfg.source)
		if err != nil {
			return nil, err
		}
		data, err = codec.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("inflate %s source: %w", cfg.source, err)
		}
	}

	l := &loader{
		cfg: cfg,
		r:   stream.NewReader(data),
	}

	return l.load()
}

// loader holds the state of a single load.
type loader struct {
	cfg  *LoaderConfig
	r    *stream.Reader
	data *tableData
	tbl  *Table

	prevRecordCount int
	prevStringSize  int64
}

func (l *loader) load() (*Table, error) {
	if l.r.Len() < section.HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, l.r.Len())
	}
	hdrBytes, err := l.r.Slice(section.HeaderSize)
	if err != nil {
		return nil, err
	}
	header, err := section.ParseHeader(hdrBytes)
	if err != nil {
		return nil, err
	}

	l.data = &tableData{
		header:  header,
		strings: newStringTable(),
	}
	l.tbl = &Table{
		data:   l.data,
		ids:    collision.NewTracker(),
		copies: make(map[int32]int32),
	}

	if header.SectionCount == 0 || header.RecordCount == 0 {
		level.Info(l.cfg.logger).Log("msg", "loaded empty table", "table_hash", header.TableHash)
		return l.tbl, nil
	}

	sections, err := l.readSectionHeaders(int(header.SectionCount))
	if err != nil {
		return nil, err
	}
	if err := l.readColumnMeta(int(header.FieldCount)); err != nil {
		return nil, err
	}
	if err := l.readPallets(); err != nil {
		return nil, err
	}
	if err := l.readCommons(); err != nil {
		return nil, err
	}

	for i := range sections {
		if err := l.readSection(i, &sections[i]); err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
	}

	if n := l.tbl.ids.Collisions(); n > 0 {
		level.Warn(l.cfg.logger).Log("msg", "duplicate record identifiers", "rows", n)
	}

	level.Info(l.cfg.logger).Log(
		"msg", "loaded table",
		"table_hash", header.TableHash,
		"records", header.RecordCount,
		"fields", header.FieldCount,
		"sections", len(sections),
		"rows", len(l.tbl.rows),
		"strings", l.data.strings.Len(),
	)

	return l.tbl, nil
}

func (l *loader) readSectionHeaders(count int) ([]section.SectionHeader, error) {
	sections := make([]section.SectionHeader, 0, min(count, l.r.Remaining()/section.SectionHeaderSize))
	for range count {
		b, err := l.r.Slice(section.SectionHeaderSize)
		if err != nil {
			return nil, err
		}
		var sh section.SectionHeader
		if err := sh.Parse(b); err != nil {
			return nil, err
		}
		sections = append(sections, sh)
	}

	return sections, nil
}

func (l *loader) readColumnMeta(count int) error {
	l.data.fieldMeta = make([]section.FieldMeta, 0, min(count, l.r.Remaining()/section.FieldMetaSize))
	for range count {
		b, err := l.r.Slice(section.FieldMetaSize)
		if err != nil {
			return err
		}
		fm, err := section.ParseFieldMeta(b)
		if err != nil {
			return err
		}
		l.data.fieldMeta = append(l.data.fieldMeta, fm)
	}

	l.data.columnMeta = make([]section.ColumnMeta, 0, len(l.data.fieldMeta))
	for range count {
		b, err := l.r.Slice(section.ColumnMetaSize)
		if err != nil {
			return err
		}
		cm, err := section.ParseColumnMeta(b)
		if err != nil {
			return err
		}
		l.data.columnMeta = append(l.data.columnMeta, cm)
	}

	return nil
}

func (l *loader) readPallets() error {
	l.data.pallets = make([][]uint32, len(l.data.columnMeta))
	for i, cm := range l.data.columnMeta {
		if !cm.Compression.UsesPallet() {
			continue
		}
		values, err := l.r.Uint32s(int(cm.AdditionalDataSize / section.PalletValueSize))
		if err != nil {
			return fmt.Errorf("pallet data of column %d: %w", i, err)
		}
		l.data.pallets[i] = values
	}

	return nil
}

func (l *loader) readCommons() error {
	l.data.commons = make([]map[int32]uint32, len(l.data.columnMeta))
	for i, cm := range l.data.columnMeta {
		if cm.Compression != format.CompressionCommon {
			continue
		}
		count := int(cm.AdditionalDataSize / section.CommonEntrySize)
		values := make(map[int32]uint32, min(count, l.r.Remaining()/section.CommonEntrySize))
		for range count {
			id, err := l.r.Int32()
			if err != nil {
				return fmt.Errorf("common data of column %d: %w", i, err)
			}
			v, err := l.r.Uint32()
			if err != nil {
				return fmt.Errorf("common data of column %d: %w", i, err)
			}
			values[id] = v
		}
		l.data.commons[i] = values
	}

	return nil
}

func (l *loader) readSection(idx int, sh *section.SectionHeader) error {
	header := &l.data.header
	logger := log.With(l.cfg.logger, "section", idx)

	if err := l.r.Seek(int(sh.FileOffset)); err != nil {
		return err
	}

	records, recordBytes, err := l.readRecords(sh)
	if err != nil {
		return err
	}

	info := SectionInfo{
		Header:   *sh,
		FirstRow: len(l.tbl.rows),
		Checksum: hash.Checksum(recordBytes),
	}

	if sh.IsEncrypted() && allZero(records) {
		level.Debug(logger).Log("msg", "skipped encrypted section", "records", sh.RecordCount, "tact_key", fmt.Sprintf("%016x", sh.TactKeyLookup))
		info.Encrypted = true
		l.tbl.sections = append(l.tbl.sections, info)
		l.prevRecordCount += int(sh.RecordCount)

		return nil
	}

	indexData, err := l.r.Int32s(int(sh.IndexDataSize / 4))
	if err != nil {
		return fmt.Errorf("index data: %w", err)
	}
	if len(indexData) > 0 && allZeroInt32(indexData) {
		indexData = make([]int32, sh.RecordCount)
		for k := range indexData {
			indexData[k] = header.MinIndex + int32(l.prevRecordCount+k) //nolint: gosec
		}
	}

	if err := l.readCopyTable(int(sh.CopyTableCount)); err != nil {
		return err
	}

	var entries []section.SparseEntry
	if sh.OffsetMapIDCount > 0 {
		if l.cfg.legacyQuirks && header.TableHash == LegacySparseQuirkTableHash {
			level.Warn(logger).Log("msg", "applying legacy sparse quirk", "table_hash", header.TableHash)
			if err := l.r.Skip(4 * int(sh.OffsetMapIDCount)); err != nil {
				return err
			}
		}
		entries, err = l.readSparseEntries(int(sh.OffsetMapIDCount))
		if err != nil {
			return err
		}
	}

	foreignKeys, err := l.readReferenceData(sh)
	if err != nil {
		return err
	}
	info.ForeignKeys = foreignKeys

	if sh.OffsetMapIDCount > 0 {
		sparseIDs, err := l.r.Int32s(int(sh.OffsetMapIDCount))
		if err != nil {
			return fmt.Errorf("sparse id list: %w", err)
		}
		if sh.IndexDataSize > 0 && len(indexData) != len(sparseIDs) {
			return fmt.Errorf("%w: %d index entries, %d sparse ids", errs.ErrIndexLengthMismatch, len(indexData), len(sparseIDs))
		}
		indexData = sparseIDs
	}

	if err := l.buildRows(sh, records, entries, indexData, foreignKeys); err != nil {
		return err
	}

	info.RowCount = len(l.tbl.rows) - info.FirstRow
	l.tbl.sections = append(l.tbl.sections, info)
	l.prevRecordCount += int(sh.RecordCount)

	level.Debug(logger).Log(
		"msg", "parsed section",
		"records", sh.RecordCount,
		"sparse", header.IsSparse(),
		"explicit_ids", sh.IndexDataSize > 0,
		"copies", sh.CopyTableCount,
		"foreign_keys", len(foreignKeys),
	)

	return nil
}

// readRecords reads the record bytes of a section, and the string blob for dense
// tables. It returns the padded record buffer and the unpadded record bytes.
func (l *loader) readRecords(sh *section.SectionHeader) ([]byte, []byte, error) {
	header := &l.data.header

	if header.IsSparse() {
		n := int(sh.OffsetRecordsEnd) - int(sh.FileOffset)
		if n < 0 || n > l.r.Remaining() {
			return nil, nil, fmt.Errorf("%w: records end at %d, section starts at %d, file is %d bytes",
				errs.ErrSparseLengthMismatch, sh.OffsetRecordsEnd, sh.FileOffset, l.r.Len())
		}
		records, err := l.r.Bytes(n, 0)
		if err != nil {
			return nil, nil, err
		}
		if l.r.Pos() != int(sh.OffsetRecordsEnd) {
			return nil, nil, fmt.Errorf("%w: position %d, expected %d", errs.ErrSparseLengthMismatch, l.r.Pos(), sh.OffsetRecordsEnd)
		}

		return records, records, nil
	}

	n := int(sh.RecordCount) * int(header.RecordSize)
	records, err := l.r.Bytes(n, densePadding)
	if err != nil {
		return nil, nil, fmt.Errorf("record data: %w", err)
	}

	blob, err := l.r.Slice(int(sh.StringTableSize))
	if err != nil {
		return nil, nil, fmt.Errorf("string data: %w", err)
	}
	if err := l.data.strings.addBlob(blob, l.prevStringSize); err != nil {
		return nil, nil, err
	}
	l.prevStringSize += int64(sh.StringTableSize)

	return records, records[:n], nil
}

func (l *loader) readCopyTable(count int) error {
	for range count {
		newID, err := l.r.Int32()
		if err != nil {
			return fmt.Errorf("copy table: %w", err)
		}
		srcID, err := l.r.Int32()
		if err != nil {
			return fmt.Errorf("copy table: %w", err)
		}
		l.tbl.copies[newID] = srcID
	}

	return nil
}

func (l *loader) readSparseEntries(count int) ([]section.SparseEntry, error) {
	entries := make([]section.SparseEntry, 0, min(count, l.r.Remaining()/section.SparseEntrySize))
	for range count {
		b, err := l.r.Slice(section.SparseEntrySize)
		if err != nil {
			return nil, fmt.Errorf("sparse entries: %w", err)
		}
		e, err := section.ParseSparseEntry(b)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// readReferenceData reads the foreign key block: a record count, min and max id,
// then (id, slot) pairs.
func (l *loader) readReferenceData(sh *section.SectionHeader) (map[int]int32, error) {
	foreignKeys := make(map[int]int32)
	if sh.ParentLookupDataSize <= 0 {
		return foreignKeys, nil
	}

	head, err := l.r.Int32s(3)
	if err != nil {
		return nil, fmt.Errorf("reference data: %w", err)
	}
	numRecords := int(head[0])
	if numRecords < 0 {
		return nil, fmt.Errorf("%w: reference data has %d records", errs.ErrCorruptFile, numRecords)
	}

	for range numRecords {
		b, err := l.r.Slice(section.ReferenceEntrySize)
		if err != nil {
			return nil, fmt.Errorf("reference data: %w", err)
		}
		e, err := section.ParseReferenceEntry(b)
		if err != nil {
			return nil, err
		}
		foreignKeys[int(e.Index)] = e.ID
	}

	return foreignKeys, nil
}

func (l *loader) buildRows(sh *section.SectionHeader, records []byte, entries []section.SparseEntry,
	indexData []int32, foreignKeys map[int]int32,
) error {
	header := &l.data.header
	recordSize := int64(header.RecordSize)
	total := int64(header.RecordCount)
	sparse := header.IsSparse()

	position := 0
	for i := range int(sh.RecordCount) {
		var anchor bitio.Anchor
		if sparse {
			if i >= len(entries) {
				return fmt.Errorf("%w: record %d, %d entries", errs.ErrSparseEntryMissing, i, len(entries))
			}
			anchor = bitio.Anchor{Offset: 0, Pos: position}
			position += int(entries[i].Size) * 8
		} else {
			anchor = bitio.Anchor{Offset: i * int(header.RecordSize), Pos: 0}
		}

		global := int64(i + l.prevRecordCount)
		row := &Row{
			table:        l.data,
			cursor:       bitio.NewCursor(records, anchor),
			anchor:       anchor,
			recordOffset: global*recordSize - total*recordSize,
			index:        len(l.tbl.rows),
			refID:        foreignKeys[i],
			id:           unknownID,
			state:        idInlineUnknown,
		}

		if sh.IndexDataSize != 0 {
			if i >= len(indexData) {
				return fmt.Errorf("%w: record %d, %d index entries", errs.ErrIndexLengthMismatch, i, len(indexData))
			}
			row.id = indexData[i]
			row.state = idExplicit
			l.tbl.ids.Track(row.id, row.index)
		}

		l.tbl.rows = append(l.tbl.rows, row)
	}

	return nil
}

func allZero(b []byte) bool {
	return len(bytes.Trim(b, "\x00")) == 0
}

func allZeroInt32(values []int32) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}

	return true
}
