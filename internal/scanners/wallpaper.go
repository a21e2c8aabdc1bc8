package scanners

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

const (
	desktopKey          = `HKCU\Control Panel\Desktop`
	lockScreenPolicyKey = `HKLM\SOFTWARE\Policies\Microsoft\Windows\Personalization`
	contentDeliveryKey  = `HKCU\SOFTWARE\Microsoft\Windows\CurrentVersion\ContentDeliveryManager`

	spotlightPackage = "Microsoft.Windows.ContentDeliveryManager_cw5n1h2txyewy"

	// Spotlight caches thumbnails next to the full-resolution images; only
	// files above this size are real wallpaper candidates.
	spotlightMinAssetSize = 100 * 1024
)

// wallpaperStyleMap names the WallpaperStyle registry encodings.
var wallpaperStyleMap = map[string]string{
	"0":  "Centered",
	"2":  "Stretched",
	"6":  "Fit",
	"10": "Fill",
	"22": "Span",
}

// WallpaperScanner reads the desktop wallpaper settings, the transcoded
// wallpaper actually on screen, the policy-set lock-screen image, and the
// Windows Spotlight rotation flags. Every field tolerates absence on its
// own; machines without a policy or without Spotlight simply yield fewer
// items.
type WallpaperScanner struct {
	store platform.KeyValueStore
	fs    platform.FileSystem
}

func NewWallpaperScanner(store platform.KeyValueStore, fs platform.FileSystem) *WallpaperScanner {
	return &WallpaperScanner{store: store, fs: fs}
}

func (s *WallpaperScanner) ID() string       { return "wallpaper" }
func (s *WallpaperScanner) Name() string     { return "Wallpaper" }
func (s *WallpaperScanner) Category() string { return types.CategoryWallpaper }

func (s *WallpaperScanner) Scan() ([]types.ScannedItem, error) {
	var items []types.ScannedItem
	items = append(items, s.scanDesktop()...)
	items = append(items, s.scanTranscoded()...)
	items = append(items, s.scanLockScreen()...)
	items = append(items, s.scanSpotlight()...)
	return items, nil
}

func (s *WallpaperScanner) scanDesktop() []types.ScannedItem {
	var items []types.ScannedItem

	if value, _, err := s.store.Get(desktopKey, "Wallpaper"); err == nil {
		path := platform.StripDevicePrefix(platform.ExpandVars(asString(value)))
		if path != "" {
			item := types.ScannedItem{
				Category:     s.Category(),
				Key:          "wallpaper.path",
				CurrentValue: path,
				SourceType:   types.SourceRegistry,
				SourcePath:   desktopKey + `\Wallpaper`,
				Metadata:     map[string]any{types.MetaSurface: "desktop"},
			}
			if asset, ok := fileAsset(s.fs, types.AssetImage, path); ok {
				item.AssociatedFiles = append(item.AssociatedFiles, asset)
			}
			items = append(items, item)
		}
	}

	if value, _, err := s.store.Get(desktopKey, "WallpaperStyle"); err == nil {
		style := asString(value)
		items = append(items, types.ScannedItem{
			Category:     s.Category(),
			Key:          "wallpaper.style",
			CurrentValue: style,
			SourceType:   types.SourceRegistry,
			SourcePath:   desktopKey + `\WallpaperStyle`,
			Metadata: map[string]any{
				"style_name": wallpaperStyleMap[style],
				"style_map":  wallpaperStyleMap,
			},
		})
	}

	if value, _, err := s.store.Get(desktopKey, "TileWallpaper"); err == nil {
		items = append(items, types.ScannedItem{
			Category:     s.Category(),
			Key:          "wallpaper.tile",
			CurrentValue: asString(value),
			SourceType:   types.SourceRegistry,
			SourcePath:   desktopKey + `\TileWallpaper`,
		})
	}

	return items
}

func transcodedWallpaperPath() string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return ""
	}
	return filepath.Join(appData, "Microsoft", "Windows", "Themes", "TranscodedWallpaper")
}

func (s *WallpaperScanner) scanTranscoded() []types.ScannedItem {
	path := transcodedWallpaperPath()
	if path == "" || !s.fs.Exists(path) {
		return nil
	}
	item := types.ScannedItem{
		Category:     s.Category(),
		Key:          "wallpaper.transcoded",
		CurrentValue: path,
		SourceType:   types.SourceFile,
		SourcePath:   path,
		Metadata:     map[string]any{types.MetaSurface: "desktop"},
	}
	if asset, ok := fileAsset(s.fs, types.AssetImage, path); ok {
		item.AssociatedFiles = append(item.AssociatedFiles, asset)
	}
	return []types.ScannedItem{item}
}

func (s *WallpaperScanner) scanLockScreen() []types.ScannedItem {
	value, _, err := s.store.Get(lockScreenPolicyKey, "LockScreenImage")
	if err != nil {
		return nil
	}
	path := platform.ExpandVars(asString(value))
	if path == "" {
		return nil
	}

	// Policy-set images cannot be written back by a per-user import.
	item := types.ScannedItem{
		Category:     s.Category(),
		Key:          "wallpaper.lockscreen.path",
		CurrentValue: path,
		SourceType:   types.SourceRegistry,
		SourcePath:   lockScreenPolicyKey + `\LockScreenImage`,
		Metadata: map[string]any{
			types.MetaSurface:  "lockscreen",
			types.MetaReadonly: true,
		},
	}
	if asset, ok := fileAsset(s.fs, types.AssetImage, path); ok {
		item.AssociatedFiles = append(item.AssociatedFiles, asset)
	}
	return []types.ScannedItem{item}
}

func (s *WallpaperScanner) scanSpotlight() []types.ScannedItem {
	var items []types.ScannedItem

	flags := []struct {
		regName string
		key     string
	}{
		{"RotatingLockScreenEnabled", "wallpaper.lockscreen.spotlightEnabled"},
		{"RotatingLockScreenOverlayEnabled", "wallpaper.lockscreen.spotlightOverlayEnabled"},
	}
	for _, flag := range flags {
		value, _, err := s.store.Get(contentDeliveryKey, flag.regName)
		if err != nil {
			continue
		}
		items = append(items, types.ScannedItem{
			Category:     s.Category(),
			Key:          flag.key,
			CurrentValue: asBool(value),
			SourceType:   types.SourceRegistry,
			SourcePath:   contentDeliveryKey + `\` + flag.regName,
			Metadata:     map[string]any{types.MetaRawValue: value, types.MetaSurface: "lockscreen"},
		})
	}

	if count, ok := s.spotlightAssetCount(); ok {
		items = append(items, types.ScannedItem{
			Category:     s.Category(),
			Key:          "wallpaper.lockscreen.spotlightAssetCount",
			CurrentValue: count,
			SourceType:   types.SourceFile,
			SourcePath:   s.spotlightAssetsDir(),
			Metadata:     map[string]any{types.MetaReadonly: true, types.MetaSurface: "lockscreen"},
		})
	}

	return items
}

func (s *WallpaperScanner) spotlightAssetsDir() string {
	localAppData := os.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		return ""
	}
	return filepath.Join(localAppData, "Packages", spotlightPackage, "LocalState", "Assets")
}

func (s *WallpaperScanner) spotlightAssetCount() (int, bool) {
	dir := s.spotlightAssetsDir()
	if dir == "" {
		return 0, false
	}
	entries, err := s.fs.ListDir(dir)
	if err != nil {
		return 0, false
	}
	count := 0
	for _, entry := range entries {
		if size, err := s.fs.Size(entry); err == nil && size >= spotlightMinAssetSize {
			count++
		}
	}
	return count, true
}

func (s *WallpaperScanner) Apply(item types.ScannedItem) bool {
	switch item.Key {
	case "wallpaper.path", "wallpaper.style", "wallpaper.tile":
		keyPath, valueName := splitRegistryPath(item.SourcePath)
		if valueName == "" {
			return false
		}
		return s.store.Set(keyPath, valueName, asString(item.CurrentValue), platform.TypeString) == nil

	case "wallpaper.transcoded":
		if len(item.AssociatedFiles) == 0 {
			return false
		}
		src := item.AssociatedFiles[0].Path
		dst := transcodedWallpaperPath()
		if dst == "" || !s.fs.Exists(src) {
			return false
		}
		return s.fs.Copy(src, dst) == nil

	case "wallpaper.lockscreen.spotlightEnabled", "wallpaper.lockscreen.spotlightOverlayEnabled":
		keyPath, valueName := splitRegistryPath(item.SourcePath)
		value := item.RawValue()
		if value == nil {
			if asBool(item.CurrentValue) {
				value = 1
			} else {
				value = 0
			}
		}
		return s.store.Set(keyPath, valueName, value, platform.TypeNone) == nil

	default:
		return false
	}
}

func (s *WallpaperScanner) SupportsItem(item types.ScannedItem) bool {
	return strings.HasPrefix(item.Key, "wallpaper.")
}

func (s *WallpaperScanner) DefaultValues() map[string]any {
	return map[string]any{
		"wallpaper.style": "10",
		"wallpaper.tile":  "0",
	}
}
