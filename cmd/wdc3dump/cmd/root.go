package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arloliu/wdc3"
	"github.com/arloliu/wdc3/format"
	"github.com/arloliu/wdc3/table"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wdc3dump",
	Short: "Inspect and dump WDC3 tables",
	Long: `wdc3dump reads WDC3 (.db2) tables and prints their header, section
layout and decoded rows.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringP("compression", "c", "none", "Container compression of the input: none, zstd, s2, lz4")
	rootCmd.PersistentFlags().Bool("no-quirks", false, "Disable compatibility handling for known malformed files")
}

// newLogger builds a logfmt logger on w that drops lines below lvl.
func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var allow level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "warn", "warning":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	logger = log.With(logger, "caller", log.DefaultCaller)

	return level.NewFilter(logger, allow), nil
}

// loadOptions translates the persistent flags into loader options.
func loadOptions(cmd *cobra.Command) ([]table.Option, error) {
	flags := cmd.Flags()
	lvl, _ := flags.GetString("log-level")
	compName, _ := flags.GetString("compression")
	noQuirks, _ := flags.GetBool("no-quirks")

	logger, err := newLogger(cmd.ErrOrStderr(), lvl)
	if err != nil {
		return nil, err
	}
	comp, err := format.ParseSourceCompression(compName)
	if err != nil {
		return nil, err
	}

	return []table.Option{
		table.WithLogger(logger),
		table.WithSourceCompression(comp),
		table.WithLegacyQuirks(!noQuirks),
	}, nil
}

func openTable(cmd *cobra.Command, path string) (*table.Table, error) {
	opts, err := loadOptions(cmd)
	if err != nil {
		return nil, err
	}

	return wdc3.OpenFile(path, opts...)
}
