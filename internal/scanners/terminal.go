package scanners

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stylesmith/stylesmith/internal/fontutil"
	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

const terminalPackagePrefix = "Microsoft.WindowsTerminal"

// terminalTopKeys are the root-level settings worth capturing verbatim.
var terminalTopKeys = []string{"defaultProfile", "theme", "useAcrylicInTabRow"}

// WindowsTerminalScanner reads the Windows Terminal settings file. The file
// lives inside a versioned package directory, so the scanner searches the
// per-user Packages tree for the name prefix.
type WindowsTerminalScanner struct {
	store platform.KeyValueStore
	fs    platform.FileSystem
}

func NewWindowsTerminalScanner(store platform.KeyValueStore, fs platform.FileSystem) *WindowsTerminalScanner {
	return &WindowsTerminalScanner{store: store, fs: fs}
}

func (s *WindowsTerminalScanner) ID() string       { return "windows_terminal" }
func (s *WindowsTerminalScanner) Name() string     { return "Windows Terminal" }
func (s *WindowsTerminalScanner) Category() string { return types.CategoryTerminal }

func (s *WindowsTerminalScanner) findSettingsPath() string {
	localAppData := os.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		return ""
	}
	packages, err := s.fs.ListDir(filepath.Join(localAppData, "Packages"))
	if err != nil {
		return ""
	}
	for _, dir := range packages {
		if !strings.HasPrefix(baseName(dir), terminalPackagePrefix) {
			continue
		}
		settings := filepath.Join(dir, "LocalState", "settings.json")
		if s.fs.Exists(settings) {
			return settings
		}
	}
	return ""
}

func (s *WindowsTerminalScanner) Scan() ([]types.ScannedItem, error) {
	settingsPath := s.findSettingsPath()
	if settingsPath == "" {
		return nil, nil
	}

	content, err := s.fs.ReadText(settingsPath)
	if err != nil {
		return nil, err
	}
	settings, err := ParseJSONC(content)
	if err != nil {
		return nil, err
	}

	var items []types.ScannedItem
	for _, key := range terminalTopKeys {
		value, ok := settings[key]
		if !ok || value == nil {
			continue
		}
		items = append(items, types.ScannedItem{
			Category:     s.Category(),
			Key:          "windowsTerminal." + key,
			CurrentValue: value,
			SourceType:   types.SourceFile,
			SourcePath:   settingsPath,
		})
	}

	if profiles, ok := settings["profiles"].(map[string]any); ok {
		if defaults, ok := profiles["defaults"].(map[string]any); ok {
			for key, value := range flattenObject(defaults, "") {
				item := types.ScannedItem{
					Category:     s.Category(),
					Key:          "windowsTerminal.defaults." + key,
					CurrentValue: value,
					SourceType:   types.SourceFile,
					SourcePath:   settingsPath,
				}
				if key == "font.face" {
					item.AssociatedFiles = s.fontAssets(asString(value))
				}
				items = append(items, item)
			}
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items, nil
}

// flattenObject turns nested objects into dotted keys. Arrays and scalars
// stay as leaf values.
func flattenObject(obj map[string]any, prefix string) map[string]any {
	out := map[string]any{}
	for key, value := range obj {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenObject(nested, full) {
				out[k] = v
			}
			continue
		}
		out[full] = value
	}
	return out
}

func (s *WindowsTerminalScanner) fontAssets(fontFamily string) []types.AssociatedFile {
	var assets []types.AssociatedFile
	for _, family := range fontutil.SplitFontFamilies(fontFamily) {
		path := fontutil.FindFontPath(s.store, s.fs, family)
		if path == "" {
			continue
		}
		if asset, ok := fileAsset(s.fs, types.AssetFont, path); ok {
			assets = append(assets, asset)
		}
	}
	return assets
}

// Apply writes one setting back through the dotted-path expansion, creating
// intermediate objects as needed and leaving every unrelated key intact.
func (s *WindowsTerminalScanner) Apply(item types.ScannedItem) bool {
	settingsPath := s.findSettingsPath()
	if settingsPath == "" {
		return false
	}

	settings := map[string]any{}
	if content, err := s.fs.ReadText(settingsPath); err == nil {
		if parsed, err := ParseJSONC(content); err == nil {
			settings = parsed
		}
	}

	key, ok := strings.CutPrefix(item.Key, "windowsTerminal.")
	if !ok {
		return false
	}
	if rest, isDefault := strings.CutPrefix(key, "defaults."); isDefault {
		key = "profiles.defaults." + rest
	}
	setNested(settings, key, item.CurrentValue)

	out, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return false
	}
	return s.fs.WriteText(settingsPath, string(out)) == nil
}

// setNested walks a dotted path into nested maps, creating intermediates.
func setNested(obj map[string]any, dotted string, value any) {
	parts := strings.Split(dotted, ".")
	current := obj
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func (s *WindowsTerminalScanner) SupportsItem(item types.ScannedItem) bool {
	return strings.HasPrefix(item.Key, "windowsTerminal.")
}

func (s *WindowsTerminalScanner) DefaultValues() map[string]any { return nil }
