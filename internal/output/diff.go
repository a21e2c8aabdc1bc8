package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/stylesmith/stylesmith/internal/engine"
	"github.com/stylesmith/stylesmith/pkg/types"
)

// RenderDiff writes a package comparison. showUnchanged includes the rows
// where both packages agree, which the table view hides by default.
func (r *Renderer) RenderDiff(diff *engine.PackageDiff, format Format, showUnchanged bool) error {
	switch format {
	case FormatJSON:
		return r.renderJSON(diff)
	case FormatYAML:
		return r.renderYAML(diff)
	default:
		return r.renderDiffTable(diff, showUnchanged)
	}
}

func (r *Renderer) renderDiffTable(diff *engine.PackageDiff, showUnchanged bool) error {
	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, r.sprintf(colorHeading, "Package diff"))
	fmt.Fprintf(w, "Added:\t%d\n", diff.AddedCount)
	fmt.Fprintf(w, "Removed:\t%d\n", diff.RemovedCount)
	fmt.Fprintf(w, "Modified:\t%d\n", diff.ModifiedCount)
	fmt.Fprintf(w, "Unchanged:\t%d\n", diff.UnchangedCount)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CHANGE\tCATEGORY\tKEY\tBEFORE\tAFTER")
	for _, entry := range diff.Entries {
		if entry.ChangeType == types.ChangeDefault && !showUnchanged {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.changeLabel(entry.ChangeType), entry.Category, entry.Key,
			diffValue(entry.Before), diffValue(entry.After))
	}
	return w.Flush()
}

func diffValue(v any) string {
	if v == nil {
		return "-"
	}
	return truncate(fmt.Sprintf("%v", v), 40)
}
