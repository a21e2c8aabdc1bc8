package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/stylesmith/stylesmith/pkg/types"
)

// RenderScan writes a scan result in the requested format.
func (r *Renderer) RenderScan(result *types.ScanResult, format Format) error {
	switch format {
	case FormatJSON:
		return r.renderJSON(result)
	case FormatYAML:
		return r.renderYAML(result)
	default:
		return r.renderScanTable(result)
	}
}

func (r *Renderer) renderScanTable(result *types.ScanResult) error {
	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, r.sprintf(colorHeading, "Scan %s", result.ScanID))
	fmt.Fprintf(w, "OS:\t%s\n", result.OSVersion)
	fmt.Fprintf(w, "Items:\t%d (%d differ from defaults)\n", result.TotalCount(), result.ModifiedCount())
	if result.DurationMS != nil {
		fmt.Fprintf(w, "Duration:\t%dms\n", *result.DurationMS)
	}
	if !result.BaselineLoaded {
		fmt.Fprintln(w, r.sprintf(colorModified, "Baseline missing: every item reports as added"))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CATEGORY\tKEY\tSTATE\tVALUE")
	for _, category := range result.Categories() {
		for _, item := range result.ItemsByCategory(category) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				item.Category, item.Key, r.changeLabel(item.ChangeType),
				truncate(fmt.Sprintf("%v", item.CurrentValue), 60))
		}
	}
	return w.Flush()
}

func (r *Renderer) changeLabel(ct types.ChangeType) string {
	switch ct {
	case types.ChangeAdded:
		return r.sprintf(colorAdded, "added")
	case types.ChangeModified:
		return r.sprintf(colorModified, "modified")
	case types.ChangeRemoved:
		return r.sprintf(colorRemoved, "removed")
	default:
		return r.sprintf(colorMuted, "default")
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
