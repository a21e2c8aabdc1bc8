package types

import (
	"encoding/json"
	"errors"
	"strings"
)

// ChangeType classifies an item relative to the defaults baseline.
type ChangeType string

const (
	// ChangeAdded means no baseline entry exists for the item's key.
	ChangeAdded ChangeType = "added"
	// ChangeModified means the current value differs from the baseline value.
	ChangeModified ChangeType = "modified"
	// ChangeDefault means the current value equals the baseline value.
	ChangeDefault ChangeType = "default"
	// ChangeRemoved is only produced when comparing two packages.
	ChangeRemoved ChangeType = "removed"
)

// IsValid checks if the ChangeType is one of the known values.
func (ct ChangeType) IsValid() bool {
	switch ct {
	case ChangeAdded, ChangeModified, ChangeDefault, ChangeRemoved:
		return true
	default:
		return false
	}
}

// SourceType identifies where a configuration item was read from.
type SourceType string

const (
	SourceRegistry  SourceType = "registry"
	SourceFile      SourceType = "file"
	SourceSystemAPI SourceType = "system_api"
)

// AssetType identifies the kind of resource file associated with an item.
type AssetType string

const (
	AssetFont   AssetType = "font"
	AssetImage  AssetType = "image"
	AssetCursor AssetType = "cursor"
	AssetScript AssetType = "script"
	AssetConfig AssetType = "config"
)

// Configuration categories. A category is a plain string key on items so
// packages written by newer versions stay readable, but scanners only emit
// these values.
const (
	CategoryFonts     = "fonts"
	CategoryTerminal  = "terminal"
	CategoryTheme     = "theme"
	CategoryWallpaper = "wallpaper"
	CategoryCursor    = "cursor"
	CategoryVSCode    = "vscode"
	CategoryBrowser   = "browser"
	CategoryExplorer  = "explorer"
)

// Metadata keys recognized across scanners. The metadata map stays open
// because scanners attach domain-specific hints, but these are the ones the
// engine itself understands.
const (
	MetaReadonly = "readonly"
	MetaRawValue = "raw_value"
	MetaSurface  = "surface"
)

// AssociatedFile is a resource referenced by a configuration item: a font
// file, a wallpaper image, a cursor shape, a profile script. Once scanned it
// is never mutated; import rewrites produce a fresh value.
type AssociatedFile struct {
	Type      AssetType `json:"type"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Exists    bool      `json:"exists"`
	SizeBytes *int64    `json:"size_bytes,omitempty"`
	SHA256    string    `json:"sha256,omitempty"`
}

// WithPath returns a copy pointing at a new on-disk location.
func (f AssociatedFile) WithPath(path string, exists bool, size *int64) AssociatedFile {
	out := f
	out.Path = path
	out.Exists = exists
	out.SizeBytes = size
	return out
}

// ScannedItem is the atomic unit of configuration: one key/value pair plus
// its provenance and related files. Items are value objects; "updating" one
// means constructing a new item via the With* helpers.
type ScannedItem struct {
	Category        string           `json:"category"`
	Key             string           `json:"key"`
	CurrentValue    any              `json:"current_value"`
	DefaultValue    any              `json:"default_value"`
	ChangeType      ChangeType       `json:"change_type"`
	SourceType      SourceType       `json:"source_type"`
	SourcePath      string           `json:"source_path"`
	AssociatedFiles []AssociatedFile `json:"associated_files"`
	Metadata        map[string]any   `json:"metadata"`
}

// Validate checks the fields every item must carry.
func (i *ScannedItem) Validate() error {
	if strings.TrimSpace(i.Category) == "" {
		return errors.New("item category is required")
	}
	if strings.TrimSpace(i.Key) == "" {
		return errors.New("item key is required")
	}
	if i.SourceType == "" {
		return errors.New("item source type is required")
	}
	if strings.TrimSpace(i.SourcePath) == "" {
		return errors.New("item source path is required")
	}
	return nil
}

// ItemKey uniquely identifies an item within one scan for diffing purposes.
func (i ScannedItem) ItemKey() string {
	return i.Category + "/" + i.Key
}

// Readonly reports whether the item is informational only and must never be
// written back during import.
func (i ScannedItem) Readonly() bool {
	if i.Metadata == nil {
		return false
	}
	switch v := i.Metadata[MetaReadonly].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

// RawValue returns the adapter-native encoding preserved at scan time, or
// nil when the display value is already faithful.
func (i ScannedItem) RawValue() any {
	if i.Metadata == nil {
		return nil
	}
	return i.Metadata[MetaRawValue]
}

// WithDiff returns a copy with the baseline value and classification filled
// in by the analyzer.
func (i ScannedItem) WithDiff(defaultValue any, ct ChangeType) ScannedItem {
	out := i.clone()
	out.DefaultValue = defaultValue
	out.ChangeType = ct
	return out
}

// WithValue returns a copy carrying a rewritten current value. Used during
// import when the value itself is a filesystem path that moved.
func (i ScannedItem) WithValue(value any) ScannedItem {
	out := i.clone()
	out.CurrentValue = value
	return out
}

// WithAssociatedFiles returns a copy carrying a replacement file list.
func (i ScannedItem) WithAssociatedFiles(files []AssociatedFile) ScannedItem {
	out := i.clone()
	out.AssociatedFiles = append([]AssociatedFile(nil), files...)
	return out
}

func (i ScannedItem) clone() ScannedItem {
	out := i
	out.AssociatedFiles = append([]AssociatedFile(nil), i.AssociatedFiles...)
	if i.Metadata != nil {
		out.Metadata = make(map[string]any, len(i.Metadata))
		for k, v := range i.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// ValuesEqual compares two item values after normalizing both through JSON,
// so an int scanned live compares equal to the float64 the same number
// becomes when a package is reloaded.
func ValuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return normalizeJSON(ja) == normalizeJSON(jb)
}

func normalizeJSON(raw []byte) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
