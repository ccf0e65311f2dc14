package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/wdc3/table"
)

// rowsCmd represents the rows command
var rowsCmd = &cobra.Command{
	Use:   "rows <file>",
	Short: "Decode rows of a table with a schema",
	Long: `Decode the rows of a WDC3 table onto a schema and print one row per line.

The schema lists one type per field: u8 i8 u16 i16 u32 i32 u64 i64 f32 string,
with a [] suffix for arrays.

Example:
  wdc3dump rows Map.db2 --schema "i32 string string u8 i16[]" --limit 10
  wdc3dump rows Map.db2 --schema "i32 string" --id 530`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaText, _ := cmd.Flags().GetString("schema")
		limit, _ := cmd.Flags().GetInt("limit")

		schema, err := table.ParseSchema(schemaText)
		if err != nil {
			return err
		}

		tbl, err := openTable(cmd, args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("id") {
			id, _ := cmd.Flags().GetInt32("id")
			return writeRowByID(cmd.OutOrStdout(), tbl, schema, id)
		}

		return writeRows(cmd.OutOrStdout(), tbl, schema, limit)
	},
}

func init() {
	rowsCmd.Flags().StringP("schema", "s", "", "Row schema, for example \"i32 string u16 f32[]\"")
	rowsCmd.Flags().IntP("limit", "n", 0, "Maximum number of rows to print, 0 for all")
	rowsCmd.Flags().Int32("id", 0, "Print only the row with this identifier")
	_ = rowsCmd.MarkFlagRequired("schema")

	rootCmd.AddCommand(rowsCmd)
}

func writeRows(w io.Writer, tbl *table.Table, schema table.Schema, limit int) error {
	values := make([]table.Value, len(schema))
	printed := 0
	for i, row := range tbl.Rows() {
		if limit > 0 && printed >= limit {
			break
		}
		if err := row.Project(schema, values); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if _, err := fmt.Fprintln(w, formatValues(values)); err != nil {
			return err
		}
		printed++
	}

	return nil
}

func writeRowByID(w io.Writer, tbl *table.Table, schema table.Schema, id int32) error {
	if err := tbl.ResolveIDs(schema); err != nil {
		return err
	}
	row, ok := tbl.RowByID(id)
	if !ok {
		return fmt.Errorf("no row with id %d", id)
	}

	values, err := row.Values(schema)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, formatValues(values))

	return err
}

func formatValues(values []table.Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}

	return strings.Join(parts, "\t")
}
