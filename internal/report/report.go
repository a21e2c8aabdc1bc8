// Package report turns a scan result into a human-readable document. Items
// are bucketed into genuine user customizations, known OS version
// differences, and stock system defaults, and font values are matched
// against the open-source font catalog.
package report

import (
	"fmt"
	"strings"

	"github.com/stylesmith/stylesmith/internal/catalog"
	"github.com/stylesmith/stylesmith/internal/fontutil"
	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

// userCustomKeys are settings a user changes deliberately. A match alone is
// not enough: the value must also not be one of the stock fonts.
var userCustomKeys = []string{
	"windowsTerminal.defaults.font.face",
	"windowsTerminal.theme",
	"vscode.editor.fontFamily",
	"vscode.workbench.colorTheme",
	"vscode.workbench.iconTheme",
	"vscode.terminal.integrated.fontFamily",
	"theme.accentColor",
	"wallpaper.path",
	"cursor.scheme",
}

// systemDefaultFonts ship with Windows; seeing one of these as a value does
// not indicate a customization.
var systemDefaultFonts = []string{
	"Cascadia Mono",
	"Cascadia Code",
	"Consolas",
	"Courier New",
	"Segoe UI",
	"Microsoft YaHei",
	"Microsoft JhengHei",
	"SimSun",
	"NSimSun",
	"SimHei",
}

// DetectedFont couples a scanned item with the catalog record its value
// matched and, when checking is enabled, the upstream release status.
type DetectedFont struct {
	Item   types.ScannedItem
	Record types.FontRecord
	Update *types.UpdateInfo
}

// Classification is a scan result split into explanation buckets.
type Classification struct {
	UserCustomizations []types.ScannedItem
	VersionDifferences []types.ScannedItem
	SystemDefaults     []types.ScannedItem
	DetectedFonts      []DetectedFont
}

// Config wires a Generator. Checker nil disables update lookups; Store and
// FS are needed only for resolving local font versions and may be nil when
// Checker is nil.
type Config struct {
	Catalog *catalog.Catalog
	Checker *catalog.UpdateChecker
	Store   platform.KeyValueStore
	FS      platform.FileSystem
}

// Generator renders reports for one scan result.
type Generator struct {
	result  *types.ScanResult
	catalog *catalog.Catalog
	checker *catalog.UpdateChecker
	store   platform.KeyValueStore
	fs      platform.FileSystem
}

// New builds a generator. When update checking is requested the remote
// catalog is merged over the provided one so newly published fonts are
// recognized; a failed fetch silently keeps the local data.
func New(result *types.ScanResult, cfg Config) *Generator {
	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.LoadEmbedded()
	}
	if cfg.Checker != nil {
		if remote := cfg.Checker.FetchRemoteCatalog(); remote != nil {
			cat = cat.Merge(remote)
		}
	}
	return &Generator{
		result:  result,
		catalog: cat,
		checker: cfg.Checker,
		store:   cfg.Store,
		fs:      cfg.FS,
	}
}

// Classify buckets every item exactly once. Detected fonts are an overlay,
// not a bucket: a font item still lands in one of the three classes.
func (g *Generator) Classify() *Classification {
	out := &Classification{}

	for _, item := range g.result.Items {
		value := asDisplayString(item.CurrentValue)

		if rec, ok := g.catalog.Identify(value); ok {
			out.DetectedFonts = append(out.DetectedFonts, DetectedFont{
				Item:   item,
				Record: rec,
				Update: g.fontUpdate(rec, value),
			})
		}

		switch {
		case g.isUserCustomization(item, value):
			out.UserCustomizations = append(out.UserCustomizations, item)
		case g.isVersionDifference(item):
			out.VersionDifferences = append(out.VersionDifferences, item)
		case item.ChangeType == types.ChangeModified:
			out.UserCustomizations = append(out.UserCustomizations, item)
		default:
			out.SystemDefaults = append(out.SystemDefaults, item)
		}
	}
	return out
}

func (g *Generator) isUserCustomization(item types.ScannedItem, value string) bool {
	for _, key := range userCustomKeys {
		if !strings.Contains(item.Key, key) {
			continue
		}
		if !containsAnyFold(value, systemDefaultFonts) {
			return true
		}
	}
	_, ok := g.catalog.Identify(value)
	return ok
}

// isVersionDifference recognizes settings that differ between Windows
// releases rather than by user action. FontLink entries are version-managed
// wholesale.
func (g *Generator) isVersionDifference(item types.ScannedItem) bool {
	if _, ok := g.catalog.SubstituteVersionDifference(item.Key); ok {
		return true
	}
	return strings.Contains(item.SourcePath, `\FontLink\`)
}

// fontUpdate resolves the locally installed version and asks upstream for
// the latest release. Any gap in the chain yields nil.
func (g *Generator) fontUpdate(rec types.FontRecord, fontName string) *types.UpdateInfo {
	if g.checker == nil {
		return nil
	}
	var localVersion string
	if g.store != nil && g.fs != nil {
		if path := fontutil.FindFontPath(g.store, g.fs, fontName); path != "" {
			if v, err := fontutil.FontVersion(g.fs, path); err == nil {
				localVersion = v
			}
		}
	}
	return g.checker.CheckFontUpdate(rec, localVersion)
}

func asDisplayString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

func containsAnyFold(value string, candidates []string) bool {
	lower := strings.ToLower(value)
	for _, c := range candidates {
		if strings.Contains(lower, strings.ToLower(c)) {
			return true
		}
	}
	return false
}
