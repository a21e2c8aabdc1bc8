package scanners

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

const (
	personalizeKey = `HKCU\SOFTWARE\Microsoft\Windows\CurrentVersion\Themes\Personalize`
	accentKey      = `HKCU\SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\Accent`
)

// personalizeFlags are the boolean/int appearance switches worth capturing.
var personalizeFlags = []struct {
	regName string
	key     string
}{
	{"AppsUseLightTheme", "theme.appsUseLightTheme"},
	{"SystemUsesLightTheme", "theme.systemUsesLightTheme"},
	{"EnableTransparency", "theme.enableTransparency"},
	{"ColorPrevalence", "theme.colorPrevalence"},
}

// ThemeScanner reads the dark/light mode flags and the accent color. The
// accent color is stored as a packed A-B-G-R integer; the scanner derives a
// #RRGGBB display value and keeps the packed integer in metadata so apply
// can write back the exact original encoding.
type ThemeScanner struct {
	store platform.KeyValueStore
	fs    platform.FileSystem
}

func NewThemeScanner(store platform.KeyValueStore, fs platform.FileSystem) *ThemeScanner {
	return &ThemeScanner{store: store, fs: fs}
}

func (s *ThemeScanner) ID() string       { return "theme" }
func (s *ThemeScanner) Name() string     { return "System Theme" }
func (s *ThemeScanner) Category() string { return types.CategoryTheme }

func (s *ThemeScanner) Scan() ([]types.ScannedItem, error) {
	var items []types.ScannedItem

	for _, flag := range personalizeFlags {
		value, _, err := s.store.Get(personalizeKey, flag.regName)
		if err != nil {
			continue
		}
		items = append(items, types.ScannedItem{
			Category:     s.Category(),
			Key:          flag.key,
			CurrentValue: value,
			SourceType:   types.SourceRegistry,
			SourcePath:   personalizeKey + `\` + flag.regName,
		})
	}

	if accent, _, err := s.store.Get(accentKey, "AccentColorMenu"); err == nil {
		if packed, ok := asInt(accent); ok {
			items = append(items, types.ScannedItem{
				Category:     s.Category(),
				Key:          "theme.accentColor",
				CurrentValue: abgrToHex(packed),
				SourceType:   types.SourceRegistry,
				SourcePath:   accentKey + `\AccentColorMenu`,
				Metadata:     map[string]any{types.MetaRawValue: packed},
			})
		}
	}

	if palette, _, err := s.store.Get(accentKey, "AccentPalette"); err == nil {
		if raw, ok := palette.([]byte); ok {
			items = append(items, types.ScannedItem{
				Category:     s.Category(),
				Key:          "theme.accentPalette",
				CurrentValue: hex.EncodeToString(raw),
				SourceType:   types.SourceRegistry,
				SourcePath:   accentKey + `\AccentPalette`,
			})
		}
	}

	return items, nil
}

// abgrToHex converts the packed memory layout (A high byte, then B, G, R)
// into the conventional #RRGGBB form.
func abgrToHex(packed int) string {
	r := packed & 0xFF
	g := (packed >> 8) & 0xFF
	b := (packed >> 16) & 0xFF
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func (s *ThemeScanner) Apply(item types.ScannedItem) bool {
	keyPath, valueName := splitRegistryPath(item.SourcePath)
	if keyPath == "" || valueName == "" {
		return false
	}

	var value any = item.CurrentValue
	valueType := platform.TypeNone
	switch {
	case item.Key == "theme.accentColor":
		raw := item.RawValue()
		if raw == nil {
			return false
		}
		packed, ok := asInt(raw)
		if !ok {
			return false
		}
		value = packed
		valueType = platform.TypeDWord
	case item.Key == "theme.accentPalette":
		decoded, err := hex.DecodeString(asString(item.CurrentValue))
		if err != nil {
			return false
		}
		value = decoded
		valueType = platform.TypeBinary
	default:
		if n, ok := asInt(item.CurrentValue); ok {
			value = n
			valueType = platform.TypeDWord
		}
	}

	return s.store.Set(keyPath, valueName, value, valueType) == nil
}

func (s *ThemeScanner) SupportsItem(item types.ScannedItem) bool {
	return strings.HasPrefix(item.Key, "theme.")
}

func (s *ThemeScanner) DefaultValues() map[string]any {
	return map[string]any{
		"theme.appsUseLightTheme":    1,
		"theme.systemUsesLightTheme": 1,
		"theme.enableTransparency":   1,
		"theme.colorPrevalence":      0,
		"theme.accentColor":          "#0078D4",
	}
}
