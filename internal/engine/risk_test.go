package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stylesmith/stylesmith/pkg/types"
)

func TestAssessRisk(t *testing.T) {
	withFiles := func(item types.ScannedItem) types.ScannedItem {
		item.AssociatedFiles = []types.AssociatedFile{{Type: types.AssetConfig, Name: "settings.json"}}
		return item
	}
	fileItem := func(category, key string) types.ScannedItem {
		item := stubItem(category, key, "x")
		item.SourceType = types.SourceFile
		return item
	}
	apiItem := stubItem("terminal", "ohMyPosh.installed", true)
	apiItem.SourceType = types.SourceSystemAPI

	tests := []struct {
		name      string
		item      types.ScannedItem
		willApply bool
		want      RiskLevel
	}{
		{"skipped item is always low", stubItem("theme", "theme.accentColor", "#112233"), false, RiskLow},
		{"registry write in appearance category", stubItem("theme", "theme.accentColor", "#112233"), true, RiskHigh},
		{"registry write in fonts category", stubItem("fonts", "MS Shell Dlg", "Tahoma"), true, RiskHigh},
		{"registry write elsewhere", stubItem("explorer", "explorer.compactMode", 1), true, RiskMedium},
		{"file write without assets", fileItem("vscode", "vscode.editor.fontSize"), true, RiskLow},
		{"file write with assets", withFiles(fileItem("vscode", "vscode.editor.fontFamily")), true, RiskMedium},
		{"system API invocation", apiItem, true, RiskHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, reason := AssessRisk(tt.item, tt.willApply)
			assert.Equal(t, tt.want, level)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestAssessRiskUnknownSource(t *testing.T) {
	item := stubItem("browser", "browser.homepage", "about:blank")
	item.SourceType = "telepathy"
	level, _ := AssessRisk(item, true)
	assert.Equal(t, RiskMedium, level)
}
