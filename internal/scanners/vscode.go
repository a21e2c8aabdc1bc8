package scanners

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

// vscodeSettingsKeys is the allowlist of settings worth carrying between
// machines: fonts, themes, and color customizations.
var vscodeSettingsKeys = []string{
	"editor.fontFamily",
	"editor.fontSize",
	"editor.fontWeight",
	"editor.fontLigatures",
	"editor.lineHeight",
	"workbench.colorTheme",
	"workbench.iconTheme",
	"workbench.productIconTheme",
	"terminal.integrated.fontFamily",
	"terminal.integrated.fontSize",
	"terminal.integrated.fontWeight",
	"workbench.colorCustomizations",
	"editor.tokenColorCustomizations",
}

var vscodeKeyDefaults = map[string]any{
	"editor.fontFamily":              "Consolas, 'Courier New', monospace",
	"editor.fontSize":                14,
	"editor.fontWeight":              "normal",
	"editor.fontLigatures":           false,
	"editor.lineHeight":              0,
	"workbench.colorTheme":           "Default Dark Modern",
	"workbench.iconTheme":            "vs-seti",
	"terminal.integrated.fontFamily": "",
	"terminal.integrated.fontSize":   14,
	"terminal.integrated.fontWeight": "normal",
}

// VSCodeScanner reads the user settings file. Structured values (color
// customization objects) are serialized to a JSON string for display while
// the original structure rides along in metadata for faithful write-back.
type VSCodeScanner struct {
	store platform.KeyValueStore
	fs    platform.FileSystem
}

func NewVSCodeScanner(store platform.KeyValueStore, fs platform.FileSystem) *VSCodeScanner {
	return &VSCodeScanner{store: store, fs: fs}
}

func (s *VSCodeScanner) ID() string       { return "vscode" }
func (s *VSCodeScanner) Name() string     { return "VS Code" }
func (s *VSCodeScanner) Category() string { return types.CategoryVSCode }

func (s *VSCodeScanner) settingsPath() string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return ""
	}
	for _, flavor := range []string{"Code", "Code - Insiders"} {
		path := filepath.Join(appData, flavor, "User", "settings.json")
		if s.fs.Exists(path) {
			return path
		}
	}
	return ""
}

func (s *VSCodeScanner) Scan() ([]types.ScannedItem, error) {
	settingsPath := s.settingsPath()
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
	for _, key := range vscodeSettingsKeys {
		value, ok := settings[key]
		if !ok || value == nil {
			continue
		}

		display := value
		metadata := map[string]any{}
		switch value.(type) {
		case map[string]any, []any:
			serialized, err := json.Marshal(value)
			if err != nil {
				continue
			}
			display = string(serialized)
			metadata[types.MetaRawValue] = value
		}

		item := types.ScannedItem{
			Category:     s.Category(),
			Key:          "vscode." + key,
			CurrentValue: display,
			DefaultValue: vscodeKeyDefaults[key],
			SourceType:   types.SourceFile,
			SourcePath:   settingsPath,
		}
		if len(metadata) > 0 {
			item.Metadata = metadata
		}
		items = append(items, item)
	}

	// The settings file itself rides along once, on the first item.
	if len(items) > 0 {
		if asset, ok := fileAsset(s.fs, types.AssetConfig, settingsPath); ok {
			items[0] = items[0].WithAssociatedFiles([]types.AssociatedFile{asset})
		}
	}

	return items, nil
}

func (s *VSCodeScanner) Apply(item types.ScannedItem) bool {
	settingsPath := s.settingsPath()
	if settingsPath == "" {
		// First import onto a machine without a settings file: create the
		// standard location.
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return false
		}
		settingsPath = filepath.Join(appData, "Code", "User", "settings.json")
	}

	settings := map[string]any{}
	if content, err := s.fs.ReadText(settingsPath); err == nil {
		if parsed, err := ParseJSONC(content); err == nil {
			settings = parsed
		}
	}

	key, ok := strings.CutPrefix(item.Key, "vscode.")
	if !ok {
		return false
	}

	value := item.RawValue()
	if value == nil {
		value = item.CurrentValue
		if str, ok := value.(string); ok && (strings.HasPrefix(str, "{") || strings.HasPrefix(str, "[")) {
			var parsed any
			if err := json.Unmarshal([]byte(str), &parsed); err == nil {
				value = parsed
			}
		}
	}
	settings[key] = value

	out, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return false
	}
	return s.fs.WriteText(settingsPath, string(out)) == nil
}

func (s *VSCodeScanner) SupportsItem(item types.ScannedItem) bool {
	return strings.HasPrefix(item.Key, "vscode.")
}

func (s *VSCodeScanner) DefaultValues() map[string]any {
	return map[string]any{
		"vscode.editor.fontFamily":    "Consolas, 'Courier New', monospace",
		"vscode.editor.fontSize":      14,
		"vscode.workbench.colorTheme": "Default Dark Modern",
	}
}
