package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/mitchellh/go-homedir"

	"github.com/stylesmith/stylesmith/pkg/types"
)

const stagingDirName = ".stylesmith"

// ResolveImportAssets rewrites associated files whose original absolute
// path no longer exists on this machine. The packaged copy is located by
// exact filename first, then by the hashed-suffix collision pattern, and is
// staged under the user's home directory keyed by scan ID. For keys whose
// current value is itself a filesystem path (wallpaper path/transcoded,
// cursor shapes) the value is rewritten to the staged path too.
func (e *StyleEngine) ResolveImportAssets(result *types.ScanResult, packageDir string) (*types.ScanResult, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	out := *result
	out.Items = make([]types.ScannedItem, 0, len(result.Items))

	for _, item := range result.Items {
		rewritten := false
		files := make([]types.AssociatedFile, 0, len(item.AssociatedFiles))
		var stagedPath string

		for _, asset := range item.AssociatedFiles {
			if e.fs.Exists(asset.Path) {
				files = append(files, asset)
				continue
			}

			packaged := e.findPackagedAsset(packageDir, item.Category, asset.Name)
			if packaged == "" {
				files = append(files, asset)
				continue
			}

			staged := filepath.Join(home, stagingDirName, "imported_assets", result.ScanID, item.Category, asset.Name)
			if err := e.fs.Copy(packaged, staged); err != nil {
				return nil, fmt.Errorf("staging asset %s: %w", asset.Name, err)
			}

			var sizePtr *int64
			if size, err := e.fs.Size(staged); err == nil {
				sizePtr = &size
			}
			files = append(files, asset.WithPath(staged, true, sizePtr))
			stagedPath = staged
			rewritten = true
		}

		if rewritten {
			item = item.WithAssociatedFiles(files)
			if stagedPath != "" && valueIsAssetPath(item.Key) {
				item = item.WithValue(stagedPath)
			}
		}
		out.Items = append(out.Items, item)
	}

	return &out, nil
}

// valueIsAssetPath reports whether an item's current value is a filesystem
// path that must follow its staged asset, rather than an opaque identifier.
func valueIsAssetPath(key string) bool {
	switch key {
	case "wallpaper.path", "wallpaper.transcoded":
		return true
	case "cursor.scheme", "cursor.size":
		return false
	}
	return strings.HasPrefix(key, "cursor.")
}

// findPackagedAsset locates a file in the package's per-category asset
// folder: exact name first, then the "stem_*<ext>" collision variant.
func (e *StyleEngine) findPackagedAsset(packageDir, category, name string) string {
	assetDir := filepath.Join(packageDir, assetsDirName, category)

	exact := filepath.Join(assetDir, name)
	if e.fs.Exists(exact) {
		return exact
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	pattern, err := glob.Compile(strings.ToLower(stem + "_*" + ext))
	if err != nil {
		return ""
	}

	entries, err := e.fs.ListDir(assetDir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if pattern.Match(strings.ToLower(filepath.Base(entry))) {
			return entry
		}
	}
	return ""
}
