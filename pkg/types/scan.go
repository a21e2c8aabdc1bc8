package types

import (
	"errors"
	"strings"
	"time"
)

// ScanIDLayout is the time layout scan IDs are derived from. The result is
// filesystem-safe because it doubles as a directory name for staged assets.
const ScanIDLayout = "20060102150405"

// ScanResult is one completed scan: an immutable list of items plus
// per-category counts. Derived views are computed, never stored.
type ScanResult struct {
	ScanID         string         `json:"scan_id"`
	ScanTime       time.Time      `json:"scan_time"`
	OSVersion      string         `json:"os_version"`
	Items          []ScannedItem  `json:"items"`
	Summary        map[string]int `json:"summary"`
	DurationMS     *int64         `json:"duration_ms,omitempty"`
	BaselineLoaded bool           `json:"baseline_loaded"`
}

// NewScanResult stamps a result with a timestamp-derived scan ID.
func NewScanResult(now time.Time) *ScanResult {
	return &ScanResult{
		ScanID:   now.Format(ScanIDLayout),
		ScanTime: now,
		Summary:  map[string]int{},
	}
}

// Validate checks the invariants a result must satisfy before it is
// packaged or imported.
func (r *ScanResult) Validate() error {
	if strings.TrimSpace(r.ScanID) == "" {
		return errors.New("scan ID is required")
	}
	if strings.ContainsAny(r.ScanID, `/\:*?"<>|`) {
		return errors.New("scan ID must be filesystem-safe")
	}
	if r.ScanTime.IsZero() {
		return errors.New("scan time is required")
	}
	return nil
}

// TotalCount returns the number of scanned items.
func (r *ScanResult) TotalCount() int { return len(r.Items) }

// ModifiedItems returns every item that is not at its default value.
func (r *ScanResult) ModifiedItems() []ScannedItem {
	var out []ScannedItem
	for _, item := range r.Items {
		if item.ChangeType != ChangeDefault {
			out = append(out, item)
		}
	}
	return out
}

// ModifiedCount returns the number of non-default items.
func (r *ScanResult) ModifiedCount() int { return len(r.ModifiedItems()) }

// ItemsByCategory returns the items belonging to one category, in scan order.
func (r *ScanResult) ItemsByCategory(category string) []ScannedItem {
	var out []ScannedItem
	for _, item := range r.Items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns the distinct categories present, in first-seen order.
func (r *ScanResult) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, item := range r.Items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}
