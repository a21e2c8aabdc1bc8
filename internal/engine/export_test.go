package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesmith/stylesmith/internal/scanners"
	"github.com/stylesmith/stylesmith/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func assetFor(t *testing.T, assetType types.AssetType, path string) types.AssociatedFile {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	size := info.Size()
	return types.AssociatedFile{
		Type:      assetType,
		Name:      filepath.Base(path),
		Path:      path,
		Exists:    true,
		SizeBytes: &size,
	}
}

func TestExportPackageWritesDocumentsAndAssets(t *testing.T) {
	src := t.TempDir()
	fontPath := filepath.Join(src, "MapleMono.ttf")
	imagePath := filepath.Join(src, "sunset.jpg")
	writeFile(t, fontPath, "font bytes")
	writeFile(t, imagePath, "image bytes")

	fontItem := stubItem("fonts", "MS Shell Dlg", "Maple Mono")
	fontItem.AssociatedFiles = []types.AssociatedFile{assetFor(t, types.AssetFont, fontPath)}
	wallpaperItem := stubItem("wallpaper", "wallpaper.path", imagePath)
	wallpaperItem.AssociatedFiles = []types.AssociatedFile{assetFor(t, types.AssetImage, imagePath)}

	result := scanResultWith("", fontItem, wallpaperItem)
	e := New(Config{Scanners: []scanners.Scanner{}})

	dest := filepath.Join(t.TempDir(), "pkg")
	manifest, err := e.ExportPackage(result, dest, ExportConfig{
		IncludeAssets:    true,
		IncludeFontFiles: true,
		Options:          types.DefaultExportOptions(),
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dest, manifestFileName))
	assert.FileExists(t, filepath.Join(dest, scanFileName))
	assert.FileExists(t, filepath.Join(dest, assetsDirName, "fonts", "MapleMono.ttf"))
	assert.FileExists(t, filepath.Join(dest, assetsDirName, "wallpaper", "sunset.jpg"))

	require.Len(t, manifest.Fonts, 1)
	assert.Equal(t, "MapleMono.ttf", manifest.Fonts[0].Name)
	assert.Equal(t, "assets/fonts/MapleMono.ttf", manifest.Fonts[0].File)
	assert.NotEmpty(t, manifest.Fonts[0].SHA256)

	loaded, err := e.LoadScanDocument(dest)
	require.NoError(t, err)
	assert.Equal(t, result.ScanID, loaded.ScanID)
	assert.Len(t, loaded.Items, 2)
}

func TestExportPackageFontFilesAreGated(t *testing.T) {
	src := t.TempDir()
	fontPath := filepath.Join(src, "MapleMono.ttf")
	writeFile(t, fontPath, "font bytes")

	fontItem := stubItem("fonts", "MS Shell Dlg", "Maple Mono")
	fontItem.AssociatedFiles = []types.AssociatedFile{assetFor(t, types.AssetFont, fontPath)}
	result := scanResultWith("", fontItem)
	e := New(Config{Scanners: []scanners.Scanner{}})

	dest := filepath.Join(t.TempDir(), "pkg")
	manifest, err := e.ExportPackage(result, dest, ExportConfig{IncludeAssets: true})
	require.NoError(t, err)

	// The font file stays out of the asset tree but the item, with its
	// original reference, is still in the scan document.
	assert.NoFileExists(t, filepath.Join(dest, assetsDirName, "fonts", "MapleMono.ttf"))
	assert.Empty(t, manifest.Fonts)

	loaded, err := e.LoadScanDocument(dest)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	require.Len(t, loaded.Items[0].AssociatedFiles, 1)
	assert.Equal(t, "MapleMono.ttf", loaded.Items[0].AssociatedFiles[0].Name)
}

func TestExportPackageDeduplicatesAndRenamesCollisions(t *testing.T) {
	src := t.TempDir()
	first := filepath.Join(src, "a", "pointer.cur")
	second := filepath.Join(src, "b", "pointer.cur")
	writeFile(t, first, "first cursor")
	writeFile(t, second, "second cursor")

	one := stubItem("cursor", "cursor.arrow", first)
	one.AssociatedFiles = []types.AssociatedFile{assetFor(t, types.AssetCursor, first)}
	two := stubItem("cursor", "cursor.hand", first)
	two.AssociatedFiles = []types.AssociatedFile{assetFor(t, types.AssetCursor, first)}
	three := stubItem("cursor", "cursor.wait", second)
	three.AssociatedFiles = []types.AssociatedFile{assetFor(t, types.AssetCursor, second)}

	result := scanResultWith("", one, two, three)
	e := New(Config{Scanners: []scanners.Scanner{}})

	dest := filepath.Join(t.TempDir(), "pkg")
	_, err := e.ExportPackage(result, dest, ExportConfig{IncludeAssets: true})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dest, assetsDirName, "cursor"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "pointer.cur", entries[0].Name())
	assert.Regexp(t, `^pointer_[0-9a-f]{8}\.cur$`, entries[1].Name())
}

func TestExportPackageZipRoundTrip(t *testing.T) {
	setTestHome(t)
	src := t.TempDir()
	imagePath := filepath.Join(src, "sunset.jpg")
	writeFile(t, imagePath, "image bytes")

	item := stubItem("wallpaper", "wallpaper.path", imagePath)
	item.AssociatedFiles = []types.AssociatedFile{assetFor(t, types.AssetImage, imagePath)}
	result := scanResultWith("", item)

	stub := &stubScanner{id: "wallpaper", category: "wallpaper", applyOK: true}
	e := New(Config{Scanners: []scanners.Scanner{stub}})

	archive := filepath.Join(t.TempDir(), "styles.zip")
	_, err := e.ExportPackage(result, archive, ExportConfig{IncludeAssets: true})
	require.NoError(t, err)
	assert.FileExists(t, archive)

	summary, err := e.ImportPackage(archive, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, []string{"wallpaper.path"}, stub.applied)
}

func TestExportPackageRejectsInvalidResult(t *testing.T) {
	e := New(Config{Scanners: []scanners.Scanner{}})
	result := &types.ScanResult{} // no scan ID, no timestamp
	_, err := e.ExportPackage(result, t.TempDir(), ExportConfig{})
	assert.Error(t, err)
}
