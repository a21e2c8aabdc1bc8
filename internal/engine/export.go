package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

// ExportConfig controls what ExportPackage physically writes. Asset copying
// and font files are opt-in separately: font files can be large and carry
// license constraints of their own.
type ExportConfig struct {
	IncludeAssets    bool
	IncludeFontFiles bool
	Options          types.ExportOptions
}

// ExportPackage writes a scan result as a portable package: manifest.json,
// scan.json, and (optionally) the associated asset files under
// assets/<category>/. A destination ending in .zip produces a single
// archive instead of a directory.
func (e *StyleEngine) ExportPackage(result *types.ScanResult, destination string, cfg ExportConfig) (*types.Manifest, error) {
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan result: %w", err)
	}

	targetDir := destination
	asZip := strings.HasSuffix(strings.ToLower(destination), ".zip")
	if asZip {
		tmp, err := os.MkdirTemp("", "stylesmith-export-*")
		if err != nil {
			return nil, fmt.Errorf("creating staging dir: %w", err)
		}
		defer os.RemoveAll(tmp)
		targetDir = tmp
	}

	manifest := types.NewManifest(
		platform.ProbeSourceSystem(e.store),
		cfg.Options,
		result.Categories(),
		time.Now(),
	)

	if cfg.IncludeAssets {
		fonts, err := e.copyAssets(result, targetDir, cfg.IncludeFontFiles)
		if err != nil {
			return nil, err
		}
		manifest.Fonts = fonts
	}

	if err := e.writeJSON(filepath.Join(targetDir, manifestFileName), manifest); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	if err := e.writeJSON(filepath.Join(targetDir, scanFileName), result); err != nil {
		return nil, fmt.Errorf("writing scan document: %w", err)
	}

	if asZip {
		if err := e.zipDir(targetDir, destination); err != nil {
			return nil, err
		}
	}

	e.log.WithFields(map[string]interface{}{
		"destination": destination,
		"items":       result.TotalCount(),
	}).Info("package exported")
	return manifest, nil
}

// copyAssets copies every existing associated file into the package's
// per-category asset tree. Within one category the same source file is
// copied once (matching is by lower-cased absolute path), and a filename
// collision between different sources gets a distinguishing suffix rather
// than an overwrite.
func (e *StyleEngine) copyAssets(result *types.ScanResult, targetDir string, includeFontFiles bool) ([]types.FontAsset, error) {
	type categoryState struct {
		bySource map[string]string // lower(abs source) → packaged name
		names    map[string]bool
	}
	states := map[string]*categoryState{}
	var fonts []types.FontAsset

	for _, item := range result.Items {
		for _, asset := range item.AssociatedFiles {
			if !asset.Exists || !e.fs.Exists(asset.Path) {
				continue
			}
			if asset.Type == types.AssetFont && !includeFontFiles {
				continue
			}

			state := states[item.Category]
			if state == nil {
				state = &categoryState{bySource: map[string]string{}, names: map[string]bool{}}
				states[item.Category] = state
			}

			sourceKey := strings.ToLower(platform.NormalizePath(asset.Path))
			if _, done := state.bySource[sourceKey]; done {
				continue
			}

			name := asset.Name
			if state.names[strings.ToLower(name)] {
				name = collisionName(name, sourceKey)
			}
			state.names[strings.ToLower(name)] = true
			state.bySource[sourceKey] = name

			dest := filepath.Join(targetDir, assetsDirName, item.Category, name)
			if err := e.fs.Copy(asset.Path, dest); err != nil {
				return nil, fmt.Errorf("copying asset %s: %w", asset.Path, err)
			}

			if asset.Type == types.AssetFont {
				font := types.FontAsset{Name: asset.Name, File: assetsDirName + "/" + item.Category + "/" + name}
				if hash, err := e.fs.Hash(dest); err == nil {
					font.SHA256 = hash
				}
				fonts = append(fonts, font)
			}
		}
	}
	return fonts, nil
}

// collisionName derives "stem_<hash8><ext>" so two different source files
// with the same basename can coexist in one category.
func collisionName(name, sourceKey string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%s%s", stem, platform.ShortHash(sourceKey), ext)
}
