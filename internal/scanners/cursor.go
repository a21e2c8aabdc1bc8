package scanners

import (
	"os"
	"strings"

	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

const cursorsKey = `HKCU\Control Panel\Cursors`

// cursorShapes are the named pointer shapes, in the order the control panel
// lists them.
var cursorShapes = []string{
	"Arrow",
	"Help",
	"AppStarting",
	"Wait",
	"Crosshair",
	"IBeam",
	"NWPen",
	"No",
	"SizeNS",
	"SizeWE",
	"SizeNWSE",
	"SizeNESW",
	"SizeAll",
	"UpArrow",
	"Hand",
}

// CursorScanner reads the pointer scheme name, the base size, and every
// shape's cursor file. Shape values may carry a `\??\` device prefix and may
// be bare filenames relative to the system cursor directory.
type CursorScanner struct {
	store platform.KeyValueStore
	fs    platform.FileSystem
}

func NewCursorScanner(store platform.KeyValueStore, fs platform.FileSystem) *CursorScanner {
	return &CursorScanner{store: store, fs: fs}
}

func (s *CursorScanner) ID() string       { return "cursor" }
func (s *CursorScanner) Name() string     { return "Mouse Cursors" }
func (s *CursorScanner) Category() string { return types.CategoryCursor }

func (s *CursorScanner) Scan() ([]types.ScannedItem, error) {
	var items []types.ScannedItem

	if scheme, _, err := s.store.Get(cursorsKey, ""); err == nil {
		if name := asString(scheme); name != "" {
			items = append(items, types.ScannedItem{
				Category:     s.Category(),
				Key:          "cursor.scheme",
				CurrentValue: name,
				DefaultValue: nil,
				SourceType:   types.SourceRegistry,
				SourcePath:   cursorsKey + `\(Default)`,
			})
		}
	}

	if size, _, err := s.store.Get(cursorsKey, "CursorBaseSize"); err == nil {
		if n, ok := asInt(size); ok {
			items = append(items, types.ScannedItem{
				Category:     s.Category(),
				Key:          "cursor.size",
				CurrentValue: n,
				SourceType:   types.SourceRegistry,
				SourcePath:   cursorsKey + `\CursorBaseSize`,
				Metadata:     map[string]any{types.MetaRawValue: size},
			})
		}
	}

	for _, shape := range cursorShapes {
		value, _, err := s.store.Get(cursorsKey, shape)
		if err != nil {
			continue
		}
		raw := asString(value)
		if raw == "" {
			continue
		}

		path := resolveCursorFile(raw)
		item := types.ScannedItem{
			Category:     s.Category(),
			Key:          "cursor." + strings.ToLower(shape),
			CurrentValue: raw,
			SourceType:   types.SourceRegistry,
			SourcePath:   cursorsKey + `\` + shape,
		}
		if asset, ok := fileAsset(s.fs, types.AssetCursor, path); ok {
			item.AssociatedFiles = append(item.AssociatedFiles, asset)
		}
		items = append(items, item)
	}

	return items, nil
}

// resolveCursorFile strips the device prefix, expands environment variables,
// and resolves bare filenames against the system cursor directory.
func resolveCursorFile(value string) string {
	path := platform.ExpandVars(platform.StripDevicePrefix(value))
	if strings.Contains(path, `\`) || strings.Contains(path, "/") {
		return path
	}
	systemRoot := os.Getenv("SystemRoot")
	if systemRoot == "" {
		systemRoot = `C:\Windows`
	}
	return systemRoot + `\Cursors\` + path
}

func (s *CursorScanner) Apply(item types.ScannedItem) bool {
	switch {
	case item.Key == "cursor.scheme":
		return s.store.Set(cursorsKey, "", asString(item.CurrentValue), platform.TypeString) == nil

	case item.Key == "cursor.size":
		n, ok := asInt(item.CurrentValue)
		if !ok {
			return false
		}
		return s.store.Set(cursorsKey, "CursorBaseSize", n, platform.TypeDWord) == nil

	case strings.HasPrefix(item.Key, "cursor."):
		shape := strings.TrimPrefix(item.Key, "cursor.")
		for _, known := range cursorShapes {
			if strings.EqualFold(known, shape) {
				err := s.store.Set(cursorsKey, known, asString(item.CurrentValue), platform.TypeExpandString)
				return err == nil
			}
		}
		return false

	default:
		return false
	}
}

func (s *CursorScanner) SupportsItem(item types.ScannedItem) bool {
	return strings.HasPrefix(item.Key, "cursor.")
}

func (s *CursorScanner) DefaultValues() map[string]any {
	return map[string]any{
		"cursor.scheme": "Windows Default",
		"cursor.size":   32,
	}
}
