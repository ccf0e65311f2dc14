package section

import (
	"github.com/arloliu/wdc3/endian"
	"github.com/arloliu/wdc3/errs"
)

// SectionHeader describes one physical data section (40 bytes on disk).
type SectionHeader struct {
	TactKeyLookup        uint64 // byte offset 0-7, zero when the section is not encrypted
	FileOffset           int32  // byte offset 8-11
	RecordCount          int32  // byte offset 12-15
	StringTableSize      int32  // byte offset 16-19
	OffsetRecordsEnd     int32  // byte offset 20-23, sparse mode only
	IndexDataSize        int32  // byte offset 24-27, in bytes
	ParentLookupDataSize int32  // byte offset 28-31, foreign key block size in bytes
	OffsetMapIDCount     int32  // byte offset 32-35, sparse entries in this section
	CopyTableCount       int32  // byte offset 36-39
}

// Parse parses a section header from data.
func (s *SectionHeader) Parse(data []byte) error {
	if len(data) < SectionHeaderSize {
		return errs.ErrTruncatedData
	}

	engine := endian.GetLittleEndianEngine()

	s.TactKeyLookup = engine.Uint64(data[0:8])
	s.FileOffset = int32(engine.Uint32(data[8:12]))            //nolint: gosec
	s.RecordCount = int32(engine.Uint32(data[12:16]))          //nolint: gosec
	s.StringTableSize = int32(engine.Uint32(data[16:20]))      //nolint: gosec
	s.OffsetRecordsEnd = int32(engine.Uint32(data[20:24]))     //nolint: gosec
	s.IndexDataSize = int32(engine.Uint32(data[24:28]))        //nolint: gosec
	s.ParentLookupDataSize = int32(engine.Uint32(data[28:32])) //nolint: gosec
	s.OffsetMapIDCount = int32(engine.Uint32(data[32:36]))     //nolint: gosec
	s.CopyTableCount = int32(engine.Uint32(data[36:40]))       //nolint: gosec

	if s.FileOffset < 0 || s.RecordCount < 0 || s.StringTableSize < 0 || s.IndexDataSize < 0 ||
		s.ParentLookupDataSize < 0 || s.OffsetMapIDCount < 0 || s.CopyTableCount < 0 {
		return errs.ErrCorruptFile
	}

	return nil
}

// Bytes serializes the section header.
func (s *SectionHeader) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()
	b := make([]byte, 0, SectionHeaderSize)

	b = engine.AppendUint64(b, s.TactKeyLookup)
	b = engine.AppendUint32(b, uint32(s.FileOffset))           //nolint: gosec
	b = engine.AppendUint32(b, uint32(s.RecordCount))          //nolint: gosec
	b = engine.AppendUint32(b, uint32(s.StringTableSize))      //nolint: gosec
	b = engine.AppendUint32(b, uint32(s.OffsetRecordsEnd))     //nolint: gosec
	b = engine.AppendUint32(b, uint32(s.IndexDataSize))        //nolint: gosec
	b = engine.AppendUint32(b, uint32(s.ParentLookupDataSize)) //nolint: gosec
	b = engine.AppendUint32(b, uint32(s.OffsetMapIDCount))     //nolint: gosec
	b = engine.AppendUint32(b, uint32(s.CopyTableCount))       //nolint: gosec

	return b
}

// IsEncrypted reports whether the section references a decryption key.
func (s *SectionHeader) IsEncrypted() bool {
	return s.TactKeyLookup != 0
}
