package scanners

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

func newWallpaperFixture(t *testing.T) (*platform.MemoryKeyValueStore, *platform.MemFileSystem) {
	t.Helper()
	t.Setenv("APPDATA", `C:\Users\test\AppData\Roaming`)
	t.Setenv("LOCALAPPDATA", `C:\Users\test\AppData\Local`)

	store := platform.NewMemoryKeyValueStore(map[string]map[string]any{
		desktopKey: {
			"Wallpaper":      `C:\Users\test\Pictures\desktop.jpg`,
			"WallpaperStyle": "10",
			"TileWallpaper":  "0",
		},
		lockScreenPolicyKey: {
			"LockScreenImage": `C:\corp\lockscreen.jpg`,
		},
		contentDeliveryKey: {
			"RotatingLockScreenEnabled":        1,
			"RotatingLockScreenOverlayEnabled": "1",
		},
	})

	fs := platform.NewMemFileSystem(map[string]string{
		`C:\Users\test\Pictures\desktop.jpg`: "desktop",
		`C:\corp\lockscreen.jpg`:             "lockscreen",
	})
	require.NoError(t, fs.WriteText(
		`C:\Users\test\AppData\Roaming\Microsoft\Windows\Themes\TranscodedWallpaper`,
		"transcoded-bytes",
	))

	spotlightDir := `C:\Users\test\AppData\Local\Packages\` + spotlightPackage + `\LocalState\Assets`
	require.NoError(t, fs.WriteText(spotlightDir+`\asset_big`, strings.Repeat("x", 120*1024)))
	require.NoError(t, fs.WriteText(spotlightDir+`\asset_small`, "x"))

	return store, fs
}

func TestWallpaperScannerCollectsAllSurfaces(t *testing.T) {
	store, fs := newWallpaperFixture(t)
	scanner := NewWallpaperScanner(store, fs)

	items, err := scanner.Scan()
	require.NoError(t, err)

	byKey := map[string]types.ScannedItem{}
	for _, item := range items {
		byKey[item.Key] = item
	}

	path := byKey["wallpaper.path"]
	assert.Equal(t, `C:\Users\test\Pictures\desktop.jpg`, path.CurrentValue)
	assert.Equal(t, "desktop", path.Metadata[types.MetaSurface])
	require.Len(t, path.AssociatedFiles, 1)
	assert.Equal(t, types.AssetImage, path.AssociatedFiles[0].Type)

	style := byKey["wallpaper.style"]
	assert.Equal(t, "10", style.CurrentValue)
	assert.Equal(t, "Fill", style.Metadata["style_name"])

	assert.Equal(t, "0", byKey["wallpaper.tile"].CurrentValue)

	transcoded := byKey["wallpaper.transcoded"]
	assert.Equal(t, types.SourceFile, transcoded.SourceType)
	require.Len(t, transcoded.AssociatedFiles, 1)

	lockscreen := byKey["wallpaper.lockscreen.path"]
	assert.Equal(t, "lockscreen", lockscreen.Metadata[types.MetaSurface])
	assert.True(t, lockscreen.Readonly())

	assert.Equal(t, true, byKey["wallpaper.lockscreen.spotlightEnabled"].CurrentValue)
	assert.Equal(t, true, byKey["wallpaper.lockscreen.spotlightOverlayEnabled"].CurrentValue)

	// Only the asset above the thumbnail threshold counts.
	count := byKey["wallpaper.lockscreen.spotlightAssetCount"]
	assert.Equal(t, 1, count.CurrentValue)
	assert.True(t, count.Readonly())
}

func TestWallpaperScannerToleratesSparseMachines(t *testing.T) {
	t.Setenv("APPDATA", `C:\Users\test\AppData\Roaming`)
	t.Setenv("LOCALAPPDATA", `C:\Users\test\AppData\Local`)

	store := platform.NewMemoryKeyValueStore(map[string]map[string]any{
		desktopKey: {"WallpaperStyle": "6"},
	})
	scanner := NewWallpaperScanner(store, platform.NewMemFileSystem(nil))

	items, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "wallpaper.style", items[0].Key)
	assert.Equal(t, "Fit", items[0].Metadata["style_name"])
}

func TestWallpaperScannerApply(t *testing.T) {
	store, fs := newWallpaperFixture(t)
	scanner := NewWallpaperScanner(store, fs)

	ok := scanner.Apply(types.ScannedItem{
		Category:     types.CategoryWallpaper,
		Key:          "wallpaper.style",
		CurrentValue: "6",
		SourceType:   types.SourceRegistry,
		SourcePath:   desktopKey + `\WallpaperStyle`,
	})
	require.True(t, ok)
	value, _, err := store.Get(desktopKey, "WallpaperStyle")
	require.NoError(t, err)
	assert.Equal(t, "6", value)

	// Transcoded wallpaper apply copies the staged file into place.
	staged := `C:\Users\test\.stylesmith\staged\TranscodedWallpaper`
	require.NoError(t, fs.WriteText(staged, "new-transcoded"))
	ok = scanner.Apply(types.ScannedItem{
		Category:     types.CategoryWallpaper,
		Key:          "wallpaper.transcoded",
		CurrentValue: staged,
		SourceType:   types.SourceFile,
		SourcePath:   staged,
		AssociatedFiles: []types.AssociatedFile{
			{Type: types.AssetImage, Name: "TranscodedWallpaper", Path: staged, Exists: true},
		},
	})
	require.True(t, ok)
	content, err := fs.ReadText(`C:\Users\test\AppData\Roaming\Microsoft\Windows\Themes\TranscodedWallpaper`)
	require.NoError(t, err)
	assert.Equal(t, "new-transcoded", content)

	// Lock-screen policy items never write back through Apply.
	assert.False(t, scanner.Apply(types.ScannedItem{Key: "wallpaper.lockscreen.path"}))
}
