package scanners

import (
	"errors"
	"strings"

	"github.com/stylesmith/stylesmith/internal/catalog"
	"github.com/stylesmith/stylesmith/internal/fontutil"
	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

const clearTypeKey = `HKCU\Control Panel\Desktop`

// clearTypeValues maps the item key suffix to the registry value name. The
// smoothing group is the only writable output of this scanner.
var clearTypeValues = []struct {
	suffix  string
	regName string
}{
	{"enabled", "FontSmoothing"},
	{"mode", "FontSmoothingType"},
	{"gamma", "FontSmoothingGamma"},
	{"orientation", "FontSmoothingOrientation"},
	{"contrast", "FontSmoothingContrast"},
}

// InstalledFontsScanner inventories the machine-wide and per-user installed
// font listings plus the ClearType smoothing parameters. Installed-font
// items are informational and marked readonly; the smoothing group writes
// back.
type InstalledFontsScanner struct {
	store   platform.KeyValueStore
	fs      platform.FileSystem
	catalog *catalog.Catalog
}

func NewInstalledFontsScanner(store platform.KeyValueStore, fs platform.FileSystem, cat *catalog.Catalog) *InstalledFontsScanner {
	return &InstalledFontsScanner{store: store, fs: fs, catalog: cat}
}

func (s *InstalledFontsScanner) ID() string       { return "installed_fonts" }
func (s *InstalledFontsScanner) Name() string     { return "Installed Fonts" }
func (s *InstalledFontsScanner) Category() string { return types.CategoryFonts }

func (s *InstalledFontsScanner) Scan() ([]types.ScannedItem, error) {
	var items []types.ScannedItem
	items = append(items, s.scanListing(fontutil.MachineFontsKey, "machine")...)
	items = append(items, s.scanListing(fontutil.UserFontsKey, "user")...)
	items = append(items, s.scanClearType()...)
	return items, nil
}

func (s *InstalledFontsScanner) scanListing(key, scope string) []types.ScannedItem {
	values, err := s.store.GetAll(key)
	if err != nil {
		return nil
	}

	var items []types.ScannedItem
	for _, name := range sortedKeys(values) {
		value := asString(values[name])
		path := fontutil.ResolveFontFile(s.fs, value)

		item := types.ScannedItem{
			Category:   s.Category(),
			Key:        "installed." + scope + "." + name,
			SourceType: types.SourceRegistry,
			SourcePath: key + `\` + name,
			Metadata:   map[string]any{types.MetaReadonly: true},
		}

		if path == "" {
			item.CurrentValue = value
		} else {
			item.CurrentValue = path
			if asset, ok := fileAsset(s.fs, types.AssetFont, path); ok {
				item.AssociatedFiles = append(item.AssociatedFiles, asset)
			}
			if version, err := fontutil.FontVersion(s.fs, path); err == nil && version != "" {
				item.Metadata["version"] = version
			}
		}

		if rec, ok := s.identify(name); ok {
			item.Metadata["is_opensource"] = true
			item.Metadata["opensource"] = map[string]any{
				"name":     rec.Name,
				"homepage": rec.Homepage,
				"download": rec.Download,
				"license":  rec.License,
			}
		} else {
			item.Metadata["is_opensource"] = false
		}

		items = append(items, item)
	}
	return items
}

func (s *InstalledFontsScanner) identify(fontName string) (types.FontRecord, bool) {
	if s.catalog == nil {
		return types.FontRecord{}, false
	}
	return s.catalog.Identify(fontName)
}

func (s *InstalledFontsScanner) scanClearType() []types.ScannedItem {
	var items []types.ScannedItem
	for _, ct := range clearTypeValues {
		raw, _, err := s.store.Get(clearTypeKey, ct.regName)
		if err != nil {
			if errors.Is(err, platform.ErrValueNotFound) {
				continue
			}
			continue
		}

		var current any
		if ct.suffix == "enabled" {
			current = asBool(raw)
		} else if n, ok := asInt(raw); ok {
			current = n
		} else {
			current = raw
		}

		items = append(items, types.ScannedItem{
			Category:     s.Category(),
			Key:          "cleartype." + ct.suffix,
			CurrentValue: current,
			SourceType:   types.SourceRegistry,
			SourcePath:   clearTypeKey + `\` + ct.regName,
			Metadata:     map[string]any{types.MetaRawValue: raw},
		})
	}
	return items
}

func (s *InstalledFontsScanner) Apply(item types.ScannedItem) bool {
	suffix, ok := strings.CutPrefix(item.Key, "cleartype.")
	if !ok {
		// Installed-font listings are readonly.
		return false
	}
	for _, ct := range clearTypeValues {
		if ct.suffix != suffix {
			continue
		}
		value := item.RawValue()
		if value == nil {
			value = clearTypeWriteValue(suffix, item.CurrentValue)
		}
		return s.store.Set(clearTypeKey, ct.regName, value, platform.TypeNone) == nil
	}
	return false
}

// clearTypeWriteValue reconstructs a writable encoding when the original raw
// value was lost, e.g. for a hand-edited package.
func clearTypeWriteValue(suffix string, current any) any {
	if suffix == "enabled" {
		if asBool(current) {
			return "2"
		}
		return "0"
	}
	if n, ok := asInt(current); ok {
		return n
	}
	return asString(current)
}

func (s *InstalledFontsScanner) SupportsItem(item types.ScannedItem) bool {
	return item.Category == s.Category() &&
		(strings.HasPrefix(item.Key, "installed.") || strings.HasPrefix(item.Key, "cleartype."))
}

func (s *InstalledFontsScanner) DefaultValues() map[string]any {
	return map[string]any{
		"cleartype.enabled": true,
		"cleartype.mode":    2,
	}
}
