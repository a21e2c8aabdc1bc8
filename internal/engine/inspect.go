package engine

import (
	"path/filepath"

	"github.com/stylesmith/stylesmith/pkg/types"
)

// AssetInfo is one packaged asset file, as seen by inspect.
type AssetInfo struct {
	Category  string `json:"category"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
}

// InspectInfo summarizes a package without importing it.
type InspectInfo struct {
	Source          string          `json:"source"`
	Manifest        *types.Manifest `json:"manifest,omitempty"`
	ScanID          string          `json:"scan_id"`
	OSVersion       string          `json:"os_version"`
	ItemCount       int             `json:"item_count"`
	ModifiedCount   int             `json:"modified_count"`
	Summary         map[string]int  `json:"summary"`
	Assets          []AssetInfo     `json:"assets"`
	AssetTotalBytes int64           `json:"asset_total_bytes"`
}

// InspectPackage reads a package's documents and asset inventory. A missing
// manifest is tolerated (older packages), a missing scan document is not.
func (e *StyleEngine) InspectPackage(source string) (*InspectInfo, error) {
	dir, cleanup, err := e.openPackage(source)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := e.LoadScanDocument(dir)
	if err != nil {
		return nil, err
	}

	info := &InspectInfo{
		Source:        source,
		ScanID:        result.ScanID,
		OSVersion:     result.OSVersion,
		ItemCount:     result.TotalCount(),
		ModifiedCount: result.ModifiedCount(),
		Summary:       result.Summary,
	}
	if manifest, err := e.LoadManifest(dir); err == nil {
		info.Manifest = manifest
	}

	assetsRoot := filepath.Join(dir, assetsDirName)
	categories, err := e.fs.ListDir(assetsRoot)
	if err != nil {
		return info, nil // no assets packaged
	}
	for _, categoryDir := range categories {
		files, err := e.fs.ListDir(categoryDir)
		if err != nil {
			continue
		}
		for _, file := range files {
			size, err := e.fs.Size(file)
			if err != nil {
				continue
			}
			info.Assets = append(info.Assets, AssetInfo{
				Category:  filepath.Base(categoryDir),
				Name:      filepath.Base(file),
				SizeBytes: size,
			})
			info.AssetTotalBytes += size
		}
	}
	return info, nil
}
