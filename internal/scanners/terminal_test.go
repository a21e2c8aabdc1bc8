package scanners

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesmith/stylesmith/internal/fontutil"
	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

const terminalSettingsPath = `C:\Users\test\AppData\Local\Packages\Microsoft.WindowsTerminal_8wekyb3d8bbwe\LocalState\settings.json`

const terminalSettingsContent = `{
	// Default shell
	"defaultProfile": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}",
	"theme": "dark",
	"useAcrylicInTabRow": true,
	"copyOnSelect": false,
	"profiles": {
		"defaults": {
			"font": {
				"face": "Maple Mono, monospace",
				"size": 12,
			},
			"opacity": 90,
		},
		"list": []
	},
}`

func newTerminalFixture(t *testing.T) (*platform.MemoryKeyValueStore, *platform.MemFileSystem) {
	t.Helper()
	t.Setenv("LOCALAPPDATA", `C:\Users\test\AppData\Local`)
	t.Setenv("SystemRoot", `C:\Windows`)

	store := platform.NewMemoryKeyValueStore(map[string]map[string]any{
		fontutil.MachineFontsKey: {
			"Maple Mono (TrueType)": "MapleMono-Regular.ttf",
		},
	})
	fs := platform.NewMemFileSystem(map[string]string{
		terminalSettingsPath:                     terminalSettingsContent,
		`C:\Windows\Fonts\MapleMono-Regular.ttf`: "maple",
	})
	return store, fs
}

func TestWindowsTerminalScannerFlattensDefaults(t *testing.T) {
	store, fs := newTerminalFixture(t)
	scanner := NewWindowsTerminalScanner(store, fs)

	items, err := scanner.Scan()
	require.NoError(t, err)

	byKey := map[string]types.ScannedItem{}
	for _, item := range items {
		byKey[item.Key] = item
	}

	assert.Equal(t, "dark", byKey["windowsTerminal.theme"].CurrentValue)
	assert.Equal(t, true, byKey["windowsTerminal.useAcrylicInTabRow"].CurrentValue)

	face, ok := byKey["windowsTerminal.defaults.font.face"]
	require.True(t, ok)
	assert.Equal(t, "Maple Mono, monospace", face.CurrentValue)
	require.Len(t, face.AssociatedFiles, 1)
	assert.Equal(t, types.AssetFont, face.AssociatedFiles[0].Type)
	assert.Equal(t, "MapleMono-Regular.ttf", face.AssociatedFiles[0].Name)

	assert.Equal(t, float64(12), byKey["windowsTerminal.defaults.font.size"].CurrentValue)
	assert.Equal(t, float64(90), byKey["windowsTerminal.defaults.opacity"].CurrentValue)

	// copyOnSelect is not in the capture set.
	_, ok = byKey["windowsTerminal.copyOnSelect"]
	assert.False(t, ok)
}

func TestWindowsTerminalScannerAbsentInstall(t *testing.T) {
	t.Setenv("LOCALAPPDATA", `C:\Users\test\AppData\Local`)
	scanner := NewWindowsTerminalScanner(platform.NewMemoryKeyValueStore(nil), platform.NewMemFileSystem(nil))
	items, err := scanner.Scan()
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestWindowsTerminalScannerApplyPreservesUnrelatedKeys(t *testing.T) {
	store, fs := newTerminalFixture(t)
	scanner := NewWindowsTerminalScanner(store, fs)

	ok := scanner.Apply(types.ScannedItem{
		Category:     types.CategoryTerminal,
		Key:          "windowsTerminal.defaults.font.face",
		CurrentValue: "JetBrains Mono",
		SourceType:   types.SourceFile,
		SourcePath:   terminalSettingsPath,
	})
	require.True(t, ok)

	written, err := fs.ReadText(terminalSettingsPath)
	require.NoError(t, err)
	var settings map[string]any
	require.NoError(t, json.Unmarshal([]byte(written), &settings))

	profiles := settings["profiles"].(map[string]any)
	defaults := profiles["defaults"].(map[string]any)
	font := defaults["font"].(map[string]any)
	assert.Equal(t, "JetBrains Mono", font["face"])
	assert.Equal(t, float64(12), font["size"])
	assert.Equal(t, false, settings["copyOnSelect"])
	assert.Equal(t, "dark", settings["theme"])
}

func TestWindowsTerminalScannerSupportsItem(t *testing.T) {
	scanner := NewWindowsTerminalScanner(platform.NewMemoryKeyValueStore(nil), platform.NewMemFileSystem(nil))
	assert.True(t, scanner.SupportsItem(types.ScannedItem{Key: "windowsTerminal.theme"}))
	assert.False(t, scanner.SupportsItem(types.ScannedItem{Key: "powershell.profile.PowerShell"}))
}
