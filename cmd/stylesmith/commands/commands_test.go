package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stylesmith/stylesmith/pkg/config"
	"github.com/stylesmith/stylesmith/pkg/types"
)

func TestExportOptions(t *testing.T) {
	all := exportOptions(nil)
	assert.True(t, all.IncludeFonts)
	assert.True(t, all.IncludeWallpapers)
	assert.True(t, all.IncludeCursors)
	assert.True(t, all.IncludeTerminal)
	assert.True(t, all.IncludeVSCode)

	narrowed := exportOptions([]string{types.CategoryFonts, types.CategoryCursor})
	assert.True(t, narrowed.IncludeFonts)
	assert.True(t, narrowed.IncludeCursors)
	assert.False(t, narrowed.IncludeWallpapers)
	assert.False(t, narrowed.IncludeTerminal)
	assert.False(t, narrowed.IncludeVSCode)
}

func TestMergeCategories(t *testing.T) {
	cfg = config.DefaultConfig()
	cfg.Scan.Categories = []string{"theme"}

	assert.Equal(t, []string{"fonts"}, mergeCategories([]string{"fonts"}))
	assert.Equal(t, []string{"theme"}, mergeCategories(nil))

	cfg.Scan.Categories = nil
	assert.Empty(t, mergeCategories(nil))
}

func TestCommandTreeRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"scan", "export", "import", "diff", "inspect", "report", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
