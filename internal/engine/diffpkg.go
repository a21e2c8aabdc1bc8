package engine

import (
	"sort"

	"github.com/stylesmith/stylesmith/pkg/types"
)

// DiffEntry describes how one setting differs between two packages.
type DiffEntry struct {
	Category   string           `json:"category"`
	Key        string           `json:"key"`
	ChangeType types.ChangeType `json:"change_type"`
	Before     interface{}      `json:"before,omitempty"`
	After      interface{}      `json:"after,omitempty"`
}

// PackageDiff is the result of comparing two packages' scan documents.
// Entries are ordered by (category, key) so output is stable.
type PackageDiff struct {
	AddedCount     int         `json:"added_count"`
	RemovedCount   int         `json:"removed_count"`
	ModifiedCount  int         `json:"modified_count"`
	UnchangedCount int         `json:"unchanged_count"`
	Entries        []DiffEntry `json:"entries"`
}

// DiffPackages compares the scan documents of two packages (directories or
// zip archives). Items only in the second package are "added", items only in
// the first are "removed", shared keys are "modified" or "default" depending
// on value equality.
func (e *StyleEngine) DiffPackages(sourceA, sourceB string) (*PackageDiff, error) {
	before, err := e.loadPackageItems(sourceA)
	if err != nil {
		return nil, err
	}
	after, err := e.loadPackageItems(sourceB)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(before)+len(after))
	seen := map[string]bool{}
	for k := range before {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range after {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	diff := &PackageDiff{}
	for _, k := range keys {
		a, inA := before[k]
		b, inB := after[k]
		switch {
		case !inA:
			diff.AddedCount++
			diff.Entries = append(diff.Entries, DiffEntry{
				Category:   b.Category,
				Key:        b.Key,
				ChangeType: types.ChangeAdded,
				After:      b.CurrentValue,
			})
		case !inB:
			diff.RemovedCount++
			diff.Entries = append(diff.Entries, DiffEntry{
				Category:   a.Category,
				Key:        a.Key,
				ChangeType: types.ChangeRemoved,
				Before:     a.CurrentValue,
			})
		case types.ValuesEqual(a.CurrentValue, b.CurrentValue):
			diff.UnchangedCount++
			diff.Entries = append(diff.Entries, DiffEntry{
				Category:   a.Category,
				Key:        a.Key,
				ChangeType: types.ChangeDefault,
				Before:     a.CurrentValue,
				After:      b.CurrentValue,
			})
		default:
			diff.ModifiedCount++
			diff.Entries = append(diff.Entries, DiffEntry{
				Category:   a.Category,
				Key:        a.Key,
				ChangeType: types.ChangeModified,
				Before:     a.CurrentValue,
				After:      b.CurrentValue,
			})
		}
	}
	return diff, nil
}

func (e *StyleEngine) loadPackageItems(source string) (map[string]types.ScannedItem, error) {
	dir, cleanup, err := e.openPackage(source)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := e.LoadScanDocument(dir)
	if err != nil {
		return nil, err
	}

	items := make(map[string]types.ScannedItem, len(result.Items))
	for _, item := range result.Items {
		items[item.ItemKey()] = item
	}
	return items, nil
}
