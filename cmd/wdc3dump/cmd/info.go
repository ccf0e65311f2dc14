package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/wdc3/table"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print the header, columns and sections of a table",
	Long: `Print the header, column metadata and section layout of a WDC3 table.

Example:
  wdc3dump info Map.db2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := openTable(cmd, args[0])
		if err != nil {
			return err
		}

		return writeInfo(cmd.OutOrStdout(), tbl)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func writeInfo(w io.Writer, tbl *table.Table) error {
	h := tbl.Header()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "table hash\t0x%08x\n", h.TableHash)
	fmt.Fprintf(tw, "layout hash\t0x%08x\n", h.LayoutHash)
	fmt.Fprintf(tw, "records\t%d\n", h.RecordCount)
	fmt.Fprintf(tw, "rows\t%d\n", tbl.Len())
	fmt.Fprintf(tw, "fields\t%d (total %d)\n", h.FieldCount, h.TotalFieldCount)
	fmt.Fprintf(tw, "record size\t%d\n", h.RecordSize)
	fmt.Fprintf(tw, "index range\t%d..%d\n", h.MinIndex, h.MaxIndex)
	fmt.Fprintf(tw, "id field\t%d\n", h.IDFieldIndex)
	fmt.Fprintf(tw, "locale\t%d\n", h.Locale)
	fmt.Fprintf(tw, "flags\t0x%04x (sparse=%t)\n", uint16(h.Flags), h.IsSparse())
	fmt.Fprintf(tw, "strings\t%d\n", tbl.StringTable().Len())
	fmt.Fprintf(tw, "copies\t%d\n", len(tbl.DuplicateRows()))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tCOMPRESSION\tOFFSET\tSIZE\tBITS\tEXTRA")
	meta := tbl.FieldMeta()
	for i, cm := range tbl.ColumnMeta() {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\n", i, cm.Compression, cm.RecordOffset, cm.Size, meta[i].Bits, cm.AdditionalDataSize)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tOFFSET\tRECORDS\tROWS\tENCRYPTED\tCHECKSUM")
	for i, s := range tbl.Sections() {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%t\t%016x\n", i, s.Header.FileOffset, s.Header.RecordCount, s.RowCount, s.Encrypted, s.Checksum)
	}

	return tw.Flush()
}
