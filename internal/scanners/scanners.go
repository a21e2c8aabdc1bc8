// Package scanners holds one scanner per personalization domain. Each
// scanner turns raw registry and file state into ScannedItems and knows how
// to write a single item back during import.
package scanners

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stylesmith/stylesmith/internal/catalog"
	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

// Scanner is the plugin contract. Scan may return an error only for
// adapter-level failures; a missing key or file is not an error, the item is
// simply absent. Apply reports success as a bool because the caller
// aggregates counts across many items.
type Scanner interface {
	ID() string
	Name() string
	Category() string
	Scan() ([]types.ScannedItem, error)
	Apply(item types.ScannedItem) bool
	SupportsItem(item types.ScannedItem) bool
	DefaultValues() map[string]any
}

// DefaultScanners returns the full ordered scanner set wired to the given
// adapters. The order is stable so scan output is deterministic.
func DefaultScanners(store platform.KeyValueStore, fs platform.FileSystem, cat *catalog.Catalog) []Scanner {
	return []Scanner{
		NewFontSubstitutesScanner(store, fs),
		NewFontLinkScanner(store, fs),
		NewInstalledFontsScanner(store, fs, cat),
		NewWindowsTerminalScanner(store, fs),
		NewPowerShellProfileScanner(store, fs),
		NewOhMyPoshScanner(store, fs),
		NewThemeScanner(store, fs),
		NewWallpaperScanner(store, fs),
		NewCursorScanner(store, fs),
		NewVSCodeScanner(store, fs),
	}
}

// splitRegistryPath splits "HKCU\Control Panel\Desktop\Wallpaper" into the
// key path and the value name.
func splitRegistryPath(sourcePath string) (keyPath, valueName string) {
	idx := strings.LastIndex(sourcePath, `\`)
	if idx < 0 {
		return sourcePath, ""
	}
	return sourcePath[:idx], sourcePath[idx+1:]
}

// fileAsset builds an AssociatedFile for an existing file, or reports false.
func fileAsset(fs platform.FileSystem, assetType types.AssetType, path string) (types.AssociatedFile, bool) {
	if path == "" || !fs.Exists(path) {
		return types.AssociatedFile{}, false
	}
	asset := types.AssociatedFile{
		Type:   assetType,
		Name:   baseName(path),
		Path:   path,
		Exists: true,
	}
	if size, err := fs.Size(path); err == nil {
		asset.SizeBytes = &size
	}
	return asset, true
}

// baseName is filepath.Base that also understands backslash paths, which
// appear verbatim in registry values regardless of the host OS.
func baseName(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// asInt coerces registry values that arrive as numbers or numeric strings.
func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// asBool derives a boolean from a numeric flag (>0) or a bool.
func asBool(value any) bool {
	if b, ok := value.(bool); ok {
		return b
	}
	if n, ok := asInt(value); ok {
		return n > 0
	}
	return false
}

// asString renders any scanned value for registry write-back.
func asString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// asStringSlice normalizes multi-string registry values, which come back as
// []string from a live store and []any from a reloaded package.
func asStringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, asString(e))
		}
		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}
