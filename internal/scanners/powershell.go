package scanners

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

const profileFileName = "Microsoft.PowerShell_profile.ps1"

// profileFlavors are the two shell generations, newest first.
var profileFlavors = []string{"PowerShell", "WindowsPowerShell"}

// PowerShellProfileScanner captures each profile script whole. The item key
// encodes the flavor so apply can retarget the current user's matching
// location on another machine.
type PowerShellProfileScanner struct {
	store platform.KeyValueStore
	fs    platform.FileSystem
}

func NewPowerShellProfileScanner(store platform.KeyValueStore, fs platform.FileSystem) *PowerShellProfileScanner {
	return &PowerShellProfileScanner{store: store, fs: fs}
}

func (s *PowerShellProfileScanner) ID() string       { return "powershell_profile" }
func (s *PowerShellProfileScanner) Name() string     { return "PowerShell Profile" }
func (s *PowerShellProfileScanner) Category() string { return types.CategoryTerminal }

func profilePath(flavor string) string {
	userProfile := os.Getenv("USERPROFILE")
	if userProfile == "" {
		return ""
	}
	return filepath.Join(userProfile, "Documents", flavor, profileFileName)
}

func (s *PowerShellProfileScanner) Scan() ([]types.ScannedItem, error) {
	var items []types.ScannedItem
	for _, flavor := range profileFlavors {
		path := profilePath(flavor)
		if path == "" || !s.fs.Exists(path) {
			continue
		}
		content, err := s.fs.ReadText(path)
		if err != nil {
			return items, err
		}

		item := types.ScannedItem{
			Category:     s.Category(),
			Key:          "powershell.profile." + flavor,
			CurrentValue: content,
			SourceType:   types.SourceFile,
			SourcePath:   path,
		}
		if asset, ok := fileAsset(s.fs, types.AssetScript, path); ok {
			item.AssociatedFiles = append(item.AssociatedFiles, asset)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *PowerShellProfileScanner) Apply(item types.ScannedItem) bool {
	flavor := strings.TrimPrefix(item.Key, "powershell.profile.")
	valid := false
	for _, f := range profileFlavors {
		if f == flavor {
			valid = true
		}
	}
	if !valid {
		return false
	}
	path := profilePath(flavor)
	if path == "" {
		return false
	}
	return s.fs.WriteText(path, asString(item.CurrentValue)) == nil
}

func (s *PowerShellProfileScanner) SupportsItem(item types.ScannedItem) bool {
	return strings.HasPrefix(item.Key, "powershell.profile.")
}

func (s *PowerShellProfileScanner) DefaultValues() map[string]any { return nil }
