package table

import (
	"github.com/go-kit/log"

	"github.com/arloliu/wdc3/compress"
	"github.com/arloliu/wdc3/format"
	"github.com/arloliu/wdc3/internal/options"
)

// LegacySparseQuirkTableHash identifies a known malformed sparse fixture whose
// sparse id list is written in front of the sparse entry table.
const LegacySparseQuirkTableHash uint32 = 145293629

// LoaderConfig holds the settings used while loading a table.
type LoaderConfig struct {
	logger       log.Logger
	source       format.SourceCompression
	legacyQuirks bool
}

// NewLoaderConfig returns the default loader configuration: no logging, an
// uncompressed source and legacy quirks enabled.
func NewLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		logger:       log.NewNopLogger(),
		source:       format.SourceNone,
		legacyQuirks: true,
	}
}

func (c *LoaderConfig) setSourceCompression(comp format.SourceCompression) error {
	if _, err := compress.GetCodec(comp); err != nil {
		return err
	}
	c.source = comp

	return nil
}

// Option represents a functional option for configuring the LoaderConfig.
type Option = options.Option[*LoaderConfig]

// WithLogger sets the logger used for load diagnostics.
// A nil logger disables logging.
func WithLogger(logger log.Logger) Option {
	return options.NoError(func(c *LoaderConfig) {
		if logger == nil {
			logger = log.NewNopLogger()
		}
		c.logger = logger
	})
}

// WithSourceCompression sets the codec wrapping the whole table file.
// The default is format.SourceNone.
func WithSourceCompression(comp format.SourceCompression) Option {
	return options.New(func(c *LoaderConfig) error {
		return c.setSourceCompression(comp)
	})
}

// WithLegacyQuirks toggles compatibility handling for known malformed files.
// It is enabled by default.
func WithLegacyQuirks(enabled bool) Option {
	return options.NoError(func(c *LoaderConfig) {
		c.legacyQuirks = enabled
	})
}
