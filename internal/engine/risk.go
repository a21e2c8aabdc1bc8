package engine

import "github.com/stylesmith/stylesmith/pkg/types"

// RiskLevel grades how much damage a single apply could do.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// appearanceCategories are the registry-backed categories where a bad write
// is immediately visible system-wide.
var appearanceCategories = map[string]bool{
	types.CategoryFonts:     true,
	types.CategoryTheme:     true,
	types.CategoryCursor:    true,
	types.CategoryWallpaper: true,
}

// AssessRisk grades one planned import action. It is a pure function of the
// item's source type, category, associated files, and whether a write will
// happen, so dry-run output is stable across runs.
func AssessRisk(item types.ScannedItem, willApply bool) (RiskLevel, string) {
	if !willApply {
		return RiskLow, "skipped, no write"
	}

	switch item.SourceType {
	case types.SourceRegistry:
		if appearanceCategories[item.Category] {
			return RiskHigh, "registry write affecting system appearance"
		}
		return RiskMedium, "registry write"
	case types.SourceFile:
		if len(item.AssociatedFiles) > 0 {
			return RiskMedium, "file write with asset relocation"
		}
		return RiskLow, "file write"
	case types.SourceSystemAPI:
		return RiskHigh, "system API invocation"
	default:
		return RiskMedium, "unknown source, proceed cautiously"
	}
}
