package section

import (
	"fmt"

	"github.com/arloliu/wdc3/endian"
	"github.com/arloliu/wdc3/errs"
	"github.com/arloliu/wdc3/format"
)

// Header is the fixed 72 byte header at the start of a WDC3 file.
type Header struct {
	Magic              uint32       // byte offset 0-3
	RecordCount        int32        // byte offset 4-7, records across all sections
	FieldCount         int32        // byte offset 8-11
	RecordSize         int32        // byte offset 12-15, dense record stride
	StringTableSize    int32        // byte offset 16-19
	TableHash          uint32       // byte offset 20-23
	LayoutHash         uint32       // byte offset 24-27
	MinIndex           int32        // byte offset 28-31
	MaxIndex           int32        // byte offset 32-35
	Locale             int32        // byte offset 36-39
	Flags              format.Flags // byte offset 40-41
	IDFieldIndex       uint16       // byte offset 42-43
	TotalFieldCount    int32        // byte offset 44-47
	PackedDataOffset   int32        // byte offset 48-51
	LookupColumnCount  int32        // byte offset 52-55
	ColumnMetaDataSize int32        // byte offset 56-59
	CommonDataSize     int32        // byte offset 60-63
	PalletDataSize     int32        // byte offset 64-67
	SectionCount       int32        // byte offset 68-71
}

// Parse parses the header from data.
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is shorter than HeaderSize, ErrInvalidMagic
//     if the signature does not match
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	h.Magic = engine.Uint32(data[0:4])
	if h.Magic != Magic {
		return fmt.Errorf("%w: got 0x%08x", errs.ErrInvalidMagic, h.Magic)
	}

	h.RecordCount = int32(engine.Uint32(data[4:8]))       //nolint: gosec
	h.FieldCount = int32(engine.Uint32(data[8:12]))       //nolint: gosec
	h.RecordSize = int32(engine.Uint32(data[12:16]))      //nolint: gosec
	h.StringTableSize = int32(engine.Uint32(data[16:20])) //nolint: gosec
	h.TableHash = engine.Uint32(data[20:24])
	h.LayoutHash = engine.Uint32(data[24:28])
	h.MinIndex = int32(engine.Uint32(data[28:32])) //nolint: gosec
	h.MaxIndex = int32(engine.Uint32(data[32:36])) //nolint: gosec
	h.Locale = int32(engine.Uint32(data[36:40]))   //nolint: gosec
	h.Flags = format.Flags(engine.Uint16(data[40:42]))
	h.IDFieldIndex = engine.Uint16(data[42:44])
	h.TotalFieldCount = int32(engine.Uint32(data[44:48]))    //nolint: gosec
	h.PackedDataOffset = int32(engine.Uint32(data[48:52]))   //nolint: gosec
	h.LookupColumnCount = int32(engine.Uint32(data[52:56]))  //nolint: gosec
	h.ColumnMetaDataSize = int32(engine.Uint32(data[56:60])) //nolint: gosec
	h.CommonDataSize = int32(engine.Uint32(data[60:64]))     //nolint: gosec
	h.PalletDataSize = int32(engine.Uint32(data[64:68]))     //nolint: gosec
	h.SectionCount = int32(engine.Uint32(data[68:72]))       //nolint: gosec

	if h.FieldCount < 0 || h.RecordCount < 0 || h.RecordSize < 0 || h.SectionCount < 0 {
		return fmt.Errorf("%w: negative count in header", errs.ErrCorruptFile)
	}

	return nil
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()
	b := make([]byte, 0, HeaderSize)

	b = engine.AppendUint32(b, h.Magic)
	b = engine.AppendUint32(b, uint32(h.RecordCount))     //nolint: gosec
	b = engine.AppendUint32(b, uint32(h.FieldCount))      //nolint: gosec
	b = engine.AppendUint32(b, uint32(h.RecordSize))      //nolint: gosec
	b = engine.AppendUint32(b, uint32(h.StringTableSize)) //nolint: gosec
	b = engine.AppendUint32(b, h.TableHash)
	b = engine.AppendUint32(b, h.LayoutHash)
	b = engine.AppendUint32(b, uint32(h.MinIndex)) //nolint: gosec
	b = engine.AppendUint32(b, uint32(h.MaxIndex)) //nolint: gosec
	b = engine.AppendUint32(b, uint32(h.Locale))   //nolint: gosec
	b = engine.AppendUint16(b, uint16(h.Flags))
	b = engine.AppendUint16(b, h.IDFieldIndex)
	b = engine.AppendUint32(b, uint32(h.TotalFieldCount))    //nolint: gosec
	b = engine.AppendUint32(b, uint32(h.PackedDataOffset))   //nolint: gosec
	b = engine.AppendUint32(b, uint32(h.LookupColumnCount))  //nolint: gosec
	b = engine.AppendUint32(b, uint32(h.ColumnMetaDataSize)) //nolint: gosec
	b = engine.AppendUint32(b, uint32(h.CommonDataSize))     //nolint: gosec
	b = engine.AppendUint32(b, uint32(h.PalletDataSize))     //nolint: gosec
	b = engine.AppendUint32(b, uint32(h.SectionCount))       //nolint: gosec

	return b
}

// IsSparse reports whether the table uses the sparse record layout.
func (h *Header) IsSparse() bool {
	return h.Flags.IsSparse()
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
