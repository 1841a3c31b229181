package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortTOMLSections(t *testing.T) {
	input := strings.Join([]string{
		"top_level = true",
		"",
		"[registry]",
		"modal_exclusive = true",
		"",
		"[appearance]",
		"color_scheme = 'auto'",
		"",
		"  [appearance.light_palette]",
		"  background = '#fafafa'",
		"",
		"[journal]",
		"enabled = true",
	}, "\n")

	sorted := sortTOMLSections(input)
	lines := strings.Split(sorted, "\n")

	assert.Equal(t, "top_level = true", lines[0])

	appearance := strings.Index(sorted, "[appearance]")
	palette := strings.Index(sorted, "[appearance.light_palette]")
	journal := strings.Index(sorted, "[journal]")
	registry := strings.Index(sorted, "[registry]")
	assert.Less(t, appearance, palette)
	assert.Less(t, palette, journal)
	assert.Less(t, journal, registry)
}

func TestWriteConfigOrderedDeterministic(t *testing.T) {
	tmp := t.TempDir()
	first := filepath.Join(tmp, "a.toml")
	second := filepath.Join(tmp, "b.toml")

	cfg := DefaultConfig()
	require.NoError(t, WriteConfigOrdered(cfg, first))
	require.NoError(t, WriteConfigOrdered(cfg, second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWriteConfigOrderedNilConfig(t *testing.T) {
	err := WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "nil.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is nil")
}
