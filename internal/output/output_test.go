package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesmith/stylesmith/internal/engine"
	"github.com/stylesmith/stylesmith/pkg/types"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "json", "yaml"} {
		format, err := ParseFormat(valid)
		require.NoError(t, err)
		assert.Equal(t, Format(valid), format)
	}
	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = ParseFormat("")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func sampleScan() *types.ScanResult {
	result := types.NewScanResult(time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC))
	result.OSVersion = "Windows 11 Pro 26100"
	result.BaselineLoaded = true
	result.Items = []types.ScannedItem{
		{
			Category: "theme", Key: "theme.accentColor", CurrentValue: "#C70039",
			ChangeType: types.ChangeModified, SourceType: types.SourceRegistry,
			SourcePath: `HKCU\SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\Accent\AccentColorMenu`,
		},
		{
			Category: "cursor", Key: "cursor.size", CurrentValue: 32,
			ChangeType: types.ChangeDefault, SourceType: types.SourceRegistry,
			SourcePath: `HKCU\Control Panel\Cursors\CursorBaseSize`,
		},
	}
	result.Summary = map[string]int{"theme": 1, "cursor": 1}
	return result
}

func TestRenderScanTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)
	require.NoError(t, r.RenderScan(sampleScan(), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Scan 20260826090000")
	assert.Contains(t, out, "Windows 11 Pro 26100")
	assert.Contains(t, out, "2 (1 differ from defaults)")
	assert.Contains(t, out, "theme.accentColor")
	assert.Contains(t, out, "modified")
	assert.Contains(t, out, "cursor.size")
	assert.NotContains(t, out, "Baseline missing")
}

func TestRenderScanJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)
	require.NoError(t, r.RenderScan(sampleScan(), FormatJSON))

	var decoded types.ScanResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "20260826090000", decoded.ScanID)
	assert.Len(t, decoded.Items, 2)
}

func TestRenderImportPlanTable(t *testing.T) {
	summary := &engine.ImportSummary{
		DryRun:     true,
		ScanID:     "20260826090000",
		WouldApply: 1,
		WouldSkip:  1,
		Skipped:    2,
		Plan: []engine.PlannedItem{
			{
				Item:   types.ScannedItem{Category: "theme", Key: "theme.accentColor"},
				Action: "apply", Risk: engine.RiskHigh,
				Reason: "registry write affecting system appearance",
			},
			{
				Item:   types.ScannedItem{Category: "fonts", Key: "installed.user.Maple Mono"},
				Action: "skip", Risk: engine.RiskLow, Reason: "readonly item",
			},
		},
		RiskCounts: map[engine.RiskLevel]int{engine.RiskHigh: 1, engine.RiskLow: 1},
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf, true)
	require.NoError(t, r.RenderImport(summary, FormatTable))

	out := buf.String()
	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "Would apply:")
	assert.Contains(t, out, "readonly item")
	assert.Contains(t, out, "high risk:")
	assert.Contains(t, out, "low risk:")
}

func TestRenderImportResultTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)
	require.NoError(t, r.RenderImport(&engine.ImportSummary{
		ScanID: "20260826090000", Applied: 3, Skipped: 1, Failed: 1,
	}, FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Imported scan 20260826090000")
	assert.Contains(t, out, "Applied:")
	assert.Contains(t, out, "Failed:")
}

func TestRenderDiffTableHidesUnchanged(t *testing.T) {
	diff := &engine.PackageDiff{
		AddedCount:     1,
		UnchangedCount: 1,
		Entries: []engine.DiffEntry{
			{Category: "cursor", Key: "cursor.size", ChangeType: types.ChangeDefault, Before: 32, After: 32},
			{Category: "wallpaper", Key: "wallpaper.style", ChangeType: types.ChangeAdded, After: "10"},
		},
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf, true)
	require.NoError(t, r.RenderDiff(diff, FormatTable, false))

	out := buf.String()
	assert.Contains(t, out, "wallpaper.style")
	assert.NotContains(t, out, "cursor.size")
	assert.Contains(t, out, "Unchanged:")

	buf.Reset()
	require.NoError(t, r.RenderDiff(diff, FormatTable, true))
	assert.Contains(t, buf.String(), "cursor.size")
}

func TestRenderInspectTable(t *testing.T) {
	info := &engine.InspectInfo{
		Source:        "styles.zip",
		ScanID:        "20260826090000",
		OSVersion:     "Windows 11 Pro 26100",
		ItemCount:     12,
		ModifiedCount: 4,
		Summary:       map[string]int{"fonts": 8, "theme": 4},
		Assets: []engine.AssetInfo{
			{Category: "fonts", Name: "MapleMono.ttf", SizeBytes: 2 * 1024 * 1024},
		},
		AssetTotalBytes: 2 * 1024 * 1024,
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf, true)
	require.NoError(t, r.RenderInspect(info, FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Package styles.zip")
	assert.Contains(t, out, "No manifest")
	assert.Contains(t, out, "MapleMono.ttf")
	assert.Contains(t, out, "2.1 MB")
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)
	require.NoError(t, r.RenderScan(sampleScan(), FormatYAML))
	assert.Contains(t, buf.String(), "scanid:")
}
