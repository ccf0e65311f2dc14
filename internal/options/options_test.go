package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type loaderConfig struct {
	limit  int
	name   string
	strict bool
}

func withLimit(n int) Option[*loaderConfig] {
	return New(func(c *loaderConfig) error {
		if n < 0 {
			return errors.New("limit cannot be negative")
		}
		c.limit = n

		return nil
	})
}

func withName(name string) Option[*loaderConfig] {
	return NoError(func(c *loaderConfig) {
		c.name = name
	})
}

func withStrict() Option[*loaderConfig] {
	return NoError(func(c *loaderConfig) {
		c.strict = true
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &loaderConfig{}
		err := Apply(cfg, withLimit(3), withName("first"), withName("second"), withStrict())
		require.NoError(t, err)
		require.Equal(t, 3, cfg.limit)
		require.Equal(t, "second", cfg.name)
		require.True(t, cfg.strict)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &loaderConfig{}
		err := Apply(cfg, withName("kept"), withLimit(-1), withStrict())
		require.Error(t, err)
		require.Equal(t, "kept", cfg.name)
		require.False(t, cfg.strict)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &loaderConfig{limit: 9}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 9, cfg.limit)
	})

	t.Run("nil option skipped", func(t *testing.T) {
		cfg := &loaderConfig{}
		require.NoError(t, Apply(cfg, nil, withStrict()))
		require.True(t, cfg.strict)
	})
}
