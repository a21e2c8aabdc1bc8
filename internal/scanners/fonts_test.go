package scanners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesmith/stylesmith/internal/fontutil"
	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

func TestFontSubstitutesScannerResolvesFontFiles(t *testing.T) {
	t.Setenv("SystemRoot", `C:\Windows`)

	store := platform.NewMemoryKeyValueStore(map[string]map[string]any{
		fontSubstitutesKey: {
			"MS Shell Dlg":   "Tahoma",
			"MS Shell Dlg 2": "Tahoma",
		},
		fontutil.MachineFontsKey: {
			"Tahoma (TrueType)": "tahoma.ttf",
		},
	})
	fs := platform.NewMemFileSystem(map[string]string{
		`C:\Windows\Fonts\tahoma.ttf`: "font-bytes",
	})

	scanner := NewFontSubstitutesScanner(store, fs)
	items, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Sorted by value name for deterministic output.
	assert.Equal(t, "MS Shell Dlg", items[0].Key)
	assert.Equal(t, "Tahoma", items[0].CurrentValue)
	assert.Equal(t, types.SourceRegistry, items[0].SourceType)
	require.Len(t, items[0].AssociatedFiles, 1)
	assert.Equal(t, types.AssetFont, items[0].AssociatedFiles[0].Type)
	assert.Equal(t, "tahoma.ttf", items[0].AssociatedFiles[0].Name)
}

func TestFontSubstitutesScannerAbsentKeyIsNotAnError(t *testing.T) {
	scanner := NewFontSubstitutesScanner(
		platform.NewMemoryKeyValueStore(nil),
		platform.NewMemFileSystem(nil),
	)
	items, err := scanner.Scan()
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestFontSubstitutesScannerApply(t *testing.T) {
	store := platform.NewMemoryKeyValueStore(nil)
	scanner := NewFontSubstitutesScanner(store, platform.NewMemFileSystem(nil))

	ok := scanner.Apply(types.ScannedItem{
		Category:     types.CategoryFonts,
		Key:          "MS Shell Dlg",
		CurrentValue: "Maple Mono",
		SourceType:   types.SourceRegistry,
		SourcePath:   fontSubstitutesKey + `\MS Shell Dlg`,
	})
	require.True(t, ok)

	value, _, err := store.Get(fontSubstitutesKey, "MS Shell Dlg")
	require.NoError(t, err)
	assert.Equal(t, "Maple Mono", value)
}

func TestFontLinkScannerExtractsLinkedFiles(t *testing.T) {
	t.Setenv("SystemRoot", `C:\Windows`)

	store := platform.NewMemoryKeyValueStore(map[string]map[string]any{
		fontLinkKey: {
			"Segoe UI": []string{"msgothic.ttc,MS UI Gothic", "missing.ttf,Gone"},
		},
	})
	fs := platform.NewMemFileSystem(map[string]string{
		`C:\Windows\Fonts\msgothic.ttc`: "collection",
	})

	scanner := NewFontLinkScanner(store, fs)
	items, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Segoe UI", items[0].Key)
	require.Len(t, items[0].AssociatedFiles, 1)
	assert.Equal(t, "msgothic.ttc", items[0].AssociatedFiles[0].Name)
}

func TestFontScannerRoutingBySourcePath(t *testing.T) {
	store := platform.NewMemoryKeyValueStore(nil)
	fs := platform.NewMemFileSystem(nil)
	subs := NewFontSubstitutesScanner(store, fs)
	link := NewFontLinkScanner(store, fs)

	subItem := types.ScannedItem{
		Category:   types.CategoryFonts,
		Key:        "MS Shell Dlg",
		SourcePath: fontSubstitutesKey + `\MS Shell Dlg`,
	}
	linkItem := types.ScannedItem{
		Category:   types.CategoryFonts,
		Key:        "Segoe UI",
		SourcePath: fontLinkKey + `\Segoe UI`,
	}

	assert.True(t, subs.SupportsItem(subItem))
	assert.False(t, subs.SupportsItem(linkItem))
	assert.True(t, link.SupportsItem(linkItem))
	assert.False(t, link.SupportsItem(subItem))
}

func TestFontLinkScannerApplyReloadedPackageValue(t *testing.T) {
	store := platform.NewMemoryKeyValueStore(nil)
	scanner := NewFontLinkScanner(store, platform.NewMemFileSystem(nil))

	// Values reloaded from scan.json arrive as []any.
	ok := scanner.Apply(types.ScannedItem{
		Category:     types.CategoryFonts,
		Key:          "Segoe UI",
		CurrentValue: []any{"msgothic.ttc,MS UI Gothic"},
		SourcePath:   fontLinkKey + `\Segoe UI`,
	})
	require.True(t, ok)

	value, valueType, err := store.Get(fontLinkKey, "Segoe UI")
	require.NoError(t, err)
	assert.Equal(t, platform.TypeMultiString, valueType)
	assert.Equal(t, []string{"msgothic.ttc,MS UI Gothic"}, value)
}
