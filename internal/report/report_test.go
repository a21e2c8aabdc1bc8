package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesmith/stylesmith/internal/catalog"
	"github.com/stylesmith/stylesmith/pkg/types"
)

func item(category, key string, value, defaultValue any, ct types.ChangeType, sourcePath string) types.ScannedItem {
	return types.ScannedItem{
		Category:     category,
		Key:          key,
		CurrentValue: value,
		DefaultValue: defaultValue,
		ChangeType:   ct,
		SourceType:   types.SourceRegistry,
		SourcePath:   sourcePath,
	}
}

func fixtureResult() *types.ScanResult {
	result := types.NewScanResult(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC))
	result.OSVersion = "Windows 11 Pro 26100"
	result.Items = []types.ScannedItem{
		item("fonts", "MS Shell Dlg", "Maple Mono SC NF", "Microsoft Sans Serif",
			types.ChangeModified, `HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\FontSubstitutes\MS Shell Dlg`),
		item("fonts", "Helv", "MS Sans Serif", "MS Sans Serif",
			types.ChangeDefault, `HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\FontSubstitutes\Helv`),
		item("fonts", "Segoe UI", []any{"segoeui.ttf,Segoe UI"}, nil,
			types.ChangeAdded, `HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\FontLink\SystemLink\Segoe UI`),
		item("theme", "theme.accentColor", "#C70039", "#0078D4",
			types.ChangeModified, `HKCU\SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\Accent\AccentColorMenu`),
		item("vscode", "vscode.editor.fontFamily", "Consolas, 'Courier New', monospace",
			"Consolas, 'Courier New', monospace", types.ChangeDefault,
			`C:\Users\test\AppData\Roaming\Code\User\settings.json`),
	}
	for _, it := range result.Items {
		result.Summary[it.Category]++
	}
	return result
}

func TestClassify(t *testing.T) {
	g := New(fixtureResult(), Config{Catalog: catalog.LoadEmbedded()})
	classified := g.Classify()

	customKeys := keysOf(classified.UserCustomizations)
	assert.ElementsMatch(t, []string{"MS Shell Dlg", "theme.accentColor"}, customKeys)

	diffKeys := keysOf(classified.VersionDifferences)
	assert.ElementsMatch(t, []string{"Helv", "Segoe UI"}, diffKeys)

	stockKeys := keysOf(classified.SystemDefaults)
	assert.ElementsMatch(t, []string{"vscode.editor.fontFamily"}, stockKeys)

	require.Len(t, classified.DetectedFonts, 1)
	assert.Equal(t, "Maple Mono", classified.DetectedFonts[0].Record.Name)
	assert.Nil(t, classified.DetectedFonts[0].Update)
}

func TestClassifyModifiedWithoutKnownKeyIsCustomization(t *testing.T) {
	result := types.NewScanResult(time.Now())
	result.Items = []types.ScannedItem{
		item("wallpaper", "wallpaper.style", "6", "10", types.ChangeModified,
			`HKCU\Control Panel\Desktop\WallpaperStyle`),
	}
	g := New(result, Config{Catalog: catalog.LoadEmbedded()})
	classified := g.Classify()
	assert.Len(t, classified.UserCustomizations, 1)
	assert.Empty(t, classified.SystemDefaults)
}

func TestMarkdownReport(t *testing.T) {
	g := New(fixtureResult(), Config{Catalog: catalog.LoadEmbedded()})
	md := g.Markdown(time.Date(2026, 8, 26, 12, 30, 0, 0, time.UTC))

	assert.Contains(t, md, "# Stylesmith Scan Report")
	assert.Contains(t, md, "**Generated**: 2026-08-26 12:30:00")
	assert.Contains(t, md, "**Operating system**: Windows 11 Pro 26100")
	assert.Contains(t, md, "| Category | Customized | OS Version Differences | Stock |")
	assert.Contains(t, md, "| fonts | 1 | 2 | 0 |")
	assert.Contains(t, md, "## Your Customizations")
	assert.Contains(t, md, "- **theme.accentColor**: `#C70039` (default: #0078D4)")
	assert.Contains(t, md, "## Detected Open-Source Fonts")
	assert.Contains(t, md, "| Maple Mono |")
	assert.Contains(t, md, "## OS Version Differences")
	assert.Contains(t, md, "- `Helv`: MS Sans Serif")
	assert.Contains(t, md, "*1 font-linking entries hidden*")
	assert.Contains(t, md, "## Stock Configuration")
}

func TestHTMLReport(t *testing.T) {
	g := New(fixtureResult(), Config{Catalog: catalog.LoadEmbedded()})
	html := g.HTML(time.Now())

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<h1>Stylesmith Scan Report</h1>")
	assert.Contains(t, html, "<th>Category</th>")
	assert.Contains(t, html, "<td>fonts</td>")
	assert.NotContains(t, html, "%s")
}

func TestMarkdownToHTMLInline(t *testing.T) {
	html := markdownToHTML("pre **bold** `code` [name](https://example.com) post")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "<code>code</code>")
	assert.Contains(t, html, `<a href="https://example.com">name</a>`)
}

func TestMarkdownToHTMLTableAndList(t *testing.T) {
	md := "| A | B |\n|---|---|\n| 1 | 2 |\n\n- first\n- second\n\ntail"
	html := markdownToHTML(md)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<tr><th>A</th><th>B</th></tr>")
	assert.Contains(t, html, "<tr><td>1</td><td>2</td></tr>")
	assert.Contains(t, html, "</table>")
	assert.Contains(t, html, "<ul>\n<li>first</li>\n<li>second</li>\n</ul>")
	assert.Contains(t, html, "<p>tail</p>")
}

func keysOf(items []types.ScannedItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Key)
	}
	return out
}
