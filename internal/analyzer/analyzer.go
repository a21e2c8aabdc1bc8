// Package analyzer classifies scanned items against the defaults baseline.
package analyzer

import "github.com/stylesmith/stylesmith/pkg/types"

// Baseline is the flattened defaults map: category → dotted key → value.
type Baseline map[string]map[string]any

// Lookup returns the default value for (category, key), if any.
func (b Baseline) Lookup(category, key string) (any, bool) {
	categoryDefaults, ok := b[category]
	if !ok {
		return nil, false
	}
	v, ok := categoryDefaults[key]
	return v, ok
}

// Analyze returns new items with DefaultValue and ChangeType populated:
// no baseline entry → added; equal value → default; otherwise → modified.
// Inputs are never mutated.
func Analyze(items []types.ScannedItem, baseline Baseline) []types.ScannedItem {
	out := make([]types.ScannedItem, 0, len(items))
	for _, item := range items {
		out = append(out, AnalyzeItem(item, baseline))
	}
	return out
}

// AnalyzeItem classifies a single item.
func AnalyzeItem(item types.ScannedItem, baseline Baseline) types.ScannedItem {
	defaultValue, ok := baseline.Lookup(item.Category, item.Key)
	if !ok || defaultValue == nil {
		return item.WithDiff(nil, types.ChangeAdded)
	}
	if types.ValuesEqual(item.CurrentValue, defaultValue) {
		return item.WithDiff(defaultValue, types.ChangeDefault)
	}
	return item.WithDiff(defaultValue, types.ChangeModified)
}
