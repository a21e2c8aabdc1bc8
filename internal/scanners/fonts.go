package scanners

import (
	"errors"
	"sort"
	"strings"

	"github.com/stylesmith/stylesmith/internal/fontutil"
	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

const (
	fontSubstitutesKey = `HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\FontSubstitutes`
	fontLinkKey        = `HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\FontLink\SystemLink`
)

// FontSubstitutesScanner reads the system font substitution mapping. Each
// entry maps an alias ("MS Shell Dlg") to the font actually rendered.
type FontSubstitutesScanner struct {
	store platform.KeyValueStore
	fs    platform.FileSystem
}

func NewFontSubstitutesScanner(store platform.KeyValueStore, fs platform.FileSystem) *FontSubstitutesScanner {
	return &FontSubstitutesScanner{store: store, fs: fs}
}

func (s *FontSubstitutesScanner) ID() string       { return "font_substitutes" }
func (s *FontSubstitutesScanner) Name() string     { return "Font Substitutes" }
func (s *FontSubstitutesScanner) Category() string { return types.CategoryFonts }

func (s *FontSubstitutesScanner) Scan() ([]types.ScannedItem, error) {
	values, err := s.store.GetAll(fontSubstitutesKey)
	if err != nil {
		if errors.Is(err, platform.ErrValueNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var items []types.ScannedItem
	for _, name := range sortedKeys(values) {
		value := values[name]
		item := types.ScannedItem{
			Category:     s.Category(),
			Key:          name,
			CurrentValue: value,
			SourceType:   types.SourceRegistry,
			SourcePath:   fontSubstitutesKey + `\` + name,
		}
		if path := fontutil.FindFontPath(s.store, s.fs, asString(value)); path != "" {
			if asset, ok := fileAsset(s.fs, types.AssetFont, path); ok {
				item.AssociatedFiles = append(item.AssociatedFiles, asset)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *FontSubstitutesScanner) Apply(item types.ScannedItem) bool {
	err := s.store.Set(fontSubstitutesKey, item.Key, asString(item.CurrentValue), platform.TypeString)
	return err == nil
}

func (s *FontSubstitutesScanner) SupportsItem(item types.ScannedItem) bool {
	return item.Category == s.Category() && strings.Contains(item.SourcePath, `\FontSubstitutes\`)
}

func (s *FontSubstitutesScanner) DefaultValues() map[string]any {
	return map[string]any{
		"MS Shell Dlg":   "Microsoft Sans Serif",
		"MS Shell Dlg 2": "Tahoma",
	}
}

// FontLinkScanner reads the linked fallback font lists. Each value is a
// multi-string of "file,Font Name" entries.
type FontLinkScanner struct {
	store platform.KeyValueStore
	fs    platform.FileSystem
}

func NewFontLinkScanner(store platform.KeyValueStore, fs platform.FileSystem) *FontLinkScanner {
	return &FontLinkScanner{store: store, fs: fs}
}

func (s *FontLinkScanner) ID() string       { return "font_link" }
func (s *FontLinkScanner) Name() string     { return "Font Link" }
func (s *FontLinkScanner) Category() string { return types.CategoryFonts }

func (s *FontLinkScanner) Scan() ([]types.ScannedItem, error) {
	values, err := s.store.GetAll(fontLinkKey)
	if err != nil {
		if errors.Is(err, platform.ErrValueNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var items []types.ScannedItem
	for _, name := range sortedKeys(values) {
		value := values[name]
		items = append(items, types.ScannedItem{
			Category:        s.Category(),
			Key:             name,
			CurrentValue:    value,
			SourceType:      types.SourceRegistry,
			SourcePath:      fontLinkKey + `\` + name,
			AssociatedFiles: s.linkedFiles(value),
		})
	}
	return items, nil
}

func (s *FontLinkScanner) linkedFiles(value any) []types.AssociatedFile {
	var files []types.AssociatedFile
	for _, entry := range asStringSlice(value) {
		filename, _, _ := strings.Cut(entry, ",")
		filename = strings.TrimSpace(filename)
		if filename == "" {
			continue
		}
		path := fontutil.ResolveFontFile(s.fs, filename)
		if path == "" {
			continue
		}
		if asset, ok := fileAsset(s.fs, types.AssetFont, path); ok {
			files = append(files, asset)
		}
	}
	return files
}

func (s *FontLinkScanner) Apply(item types.ScannedItem) bool {
	entries := asStringSlice(item.CurrentValue)
	if entries == nil {
		return false
	}
	err := s.store.Set(fontLinkKey, item.Key, entries, platform.TypeMultiString)
	return err == nil
}

func (s *FontLinkScanner) SupportsItem(item types.ScannedItem) bool {
	return item.Category == s.Category() && strings.Contains(item.SourcePath, `\FontLink\`)
}

func (s *FontLinkScanner) DefaultValues() map[string]any { return nil }

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
