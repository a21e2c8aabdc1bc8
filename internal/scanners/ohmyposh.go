package scanners

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

// Theme config references inside a profile script: either the init
// invocation's --config argument or a POSH_THEME assignment.
var (
	ompConfigArg   = regexp.MustCompile(`oh-my-posh\s+init\s+\S+.*?--config[\s=]+"?([^"|]+?)"?(?:\s*\||\s*$)`)
	ompThemeAssign = regexp.MustCompile(`\$env:POSH_THEME\s*=\s*"?([^"\s]+)"?`)
)

// OhMyPoshScanner is detection-only: it reports whether the prompt engine is
// installed and which theme each shell profile initializes it with. All
// items are readonly; there is nothing safe to write back.
type OhMyPoshScanner struct {
	store platform.KeyValueStore
	fs    platform.FileSystem

	// lookPath is swappable so tests can fake executable discovery.
	lookPath func(file string) (string, error)
}

func NewOhMyPoshScanner(store platform.KeyValueStore, fs platform.FileSystem) *OhMyPoshScanner {
	return &OhMyPoshScanner{store: store, fs: fs, lookPath: exec.LookPath}
}

func (s *OhMyPoshScanner) ID() string       { return "oh_my_posh" }
func (s *OhMyPoshScanner) Name() string     { return "Oh My Posh" }
func (s *OhMyPoshScanner) Category() string { return types.CategoryTerminal }

func (s *OhMyPoshScanner) executablePath() string {
	if path, err := s.lookPath("oh-my-posh"); err == nil && path != "" {
		return path
	}
	for _, dir := range s.wellKnownDirs() {
		candidate := filepath.Join(dir, "oh-my-posh.exe")
		if s.fs.Exists(candidate) {
			return candidate
		}
	}
	return ""
}

func (s *OhMyPoshScanner) wellKnownDirs() []string {
	var dirs []string
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		dirs = append(dirs, filepath.Join(localAppData, "Programs", "oh-my-posh", "bin"))
	}
	if programFiles := os.Getenv("PROGRAMFILES"); programFiles != "" {
		dirs = append(dirs, filepath.Join(programFiles, "oh-my-posh", "bin"))
	}
	return dirs
}

func (s *OhMyPoshScanner) Scan() ([]types.ScannedItem, error) {
	exePath := s.executablePath()
	installed := exePath != ""

	installedItem := types.ScannedItem{
		Category:     s.Category(),
		Key:          "ohMyPosh.installed",
		CurrentValue: installed,
		SourceType:   types.SourceSystemAPI,
		SourcePath:   "oh-my-posh",
		Metadata:     map[string]any{types.MetaReadonly: true},
	}
	if exePath != "" {
		installedItem.SourcePath = exePath
	}
	items := []types.ScannedItem{installedItem}

	if !installed {
		return items, nil
	}

	for _, flavor := range profileFlavors {
		path := profilePath(flavor)
		if path == "" || !s.fs.Exists(path) {
			continue
		}
		content, err := s.fs.ReadText(path)
		if err != nil {
			continue
		}
		themePath := extractThemePath(content)
		if themePath == "" || !s.fs.Exists(themePath) {
			continue
		}

		item := types.ScannedItem{
			Category:     s.Category(),
			Key:          "ohMyPosh.theme." + flavor,
			CurrentValue: themePath,
			SourceType:   types.SourceFile,
			SourcePath:   path,
			Metadata:     map[string]any{types.MetaReadonly: true},
		}
		if asset, ok := fileAsset(s.fs, types.AssetConfig, themePath); ok {
			item.AssociatedFiles = append(item.AssociatedFiles, asset)
		}
		items = append(items, item)
	}
	return items, nil
}

// extractThemePath finds the theme config referenced by a profile script,
// expanding both %VAR% and $env:VAR syntax.
func extractThemePath(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if m := ompConfigArg.FindStringSubmatch(line); m != nil {
			return platform.ExpandPSVars(strings.TrimSpace(m[1]))
		}
		if m := ompThemeAssign.FindStringSubmatch(line); m != nil {
			return platform.ExpandPSVars(strings.TrimSpace(m[1]))
		}
	}
	return ""
}

func (s *OhMyPoshScanner) Apply(types.ScannedItem) bool { return false }

func (s *OhMyPoshScanner) SupportsItem(item types.ScannedItem) bool {
	return strings.HasPrefix(item.Key, "ohMyPosh.")
}

func (s *OhMyPoshScanner) DefaultValues() map[string]any { return nil }
