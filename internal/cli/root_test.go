package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quakeboy/qmd-search-obsidian/internal/config"
)

func TestNewRootCmd_RegistersOneCommandPerMode(t *testing.T) {
	root := NewRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	require.True(t, names["search"])
	require.True(t, names["vsearch"])
	require.True(t, names["query"])
	require.True(t, names["config"])
}

func TestNewRootCmd_PersistentFlags(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"vault", "collection", "executable", "limit", "extra-path", "debug"} {
		require.NotNil(t, root.PersistentFlags().Lookup(name), "flag %s", name)
	}
}

func TestSetSetting(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, setSetting(cfg, "collection", "work"))
	require.Equal(t, "work", cfg.Collection)

	require.NoError(t, setSetting(cfg, "limit", "32"))
	require.Equal(t, 32, cfg.Limit)

	// Non-numeric limit coerces to the default instead of erroring
	require.NoError(t, setSetting(cfg, "limit", "plenty"))
	require.Equal(t, config.DefaultLimit, cfg.Limit)

	require.NoError(t, setSetting(cfg, "debug", "true"))
	require.True(t, cfg.Debug)

	require.Error(t, setSetting(cfg, "debug", "maybe"))
	require.Error(t, setSetting(cfg, "nope", "x"))
}

func TestLookupSetting(t *testing.T) {
	cfg := config.DefaultConfig()

	val, ok := lookupSetting(cfg, "executable")
	require.True(t, ok)
	require.Equal(t, "qmd", val)

	val, ok = lookupSetting(cfg, "limit")
	require.True(t, ok)
	require.Equal(t, "16", val)

	_, ok = lookupSetting(cfg, "unknown")
	require.False(t, ok)
}
