package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	name  string
	count int
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
	})
}

func withCount(count int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if count < 0 {
			return errors.New("count must be >= 0")
		}
		c.count = count

		return nil
	})
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}
	err := Apply(cfg, withName("block"), withCount(7))

	require.NoError(t, err)
	require.Equal(t, "block", cfg.name)
	require.Equal(t, 7, cfg.count)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &testConfig{}
	err := Apply(cfg, withCount(-1), withName("never"))

	require.Error(t, err)
	require.Empty(t, cfg.name)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &testConfig{}
	require.NoError(t, Apply(cfg))
}
