package table

import (
	"bytes"
	"fmt"

	"github.com/arloliu/wdc3/errs"
)

// StringTable maps byte offsets within the concatenated string blobs of all dense
// sections to the null-terminated string starting there.
type StringTable struct {
	entries map[int64]string
}

func newStringTable() *StringTable {
	return &StringTable{entries: make(map[int64]string)}
}

// addBlob records every string in blob, keyed by base plus its offset in blob.
func (st *StringTable) addBlob(blob []byte, base int64) error {
	for i := 0; i < len(blob); {
		end := bytes.IndexByte(blob[i:], 0)
		if end < 0 {
			return fmt.Errorf("%w: unterminated string at blob offset %d", errs.ErrTruncatedData, base+int64(i))
		}
		st.entries[base+int64(i)] = string(blob[i : i+end])
		i += end + 1
	}

	return nil
}

// Lookup returns the string starting at offset.
func (st *StringTable) Lookup(offset int64) (string, bool) {
	s, ok := st.entries[offset]
	return s, ok
}

// Len returns the number of strings.
func (st *StringTable) Len() int {
	return len(st.entries)
}
