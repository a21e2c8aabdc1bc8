package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/stylesmith/stylesmith/internal/engine"
)

// RenderImport writes an import summary. Dry runs get the itemized plan;
// real runs get the outcome counts.
func (r *Renderer) RenderImport(summary *engine.ImportSummary, format Format) error {
	switch format {
	case FormatJSON:
		return r.renderJSON(summary)
	case FormatYAML:
		return r.renderYAML(summary)
	default:
		if summary.DryRun {
			return r.renderPlanTable(summary)
		}
		return r.renderImportTable(summary)
	}
}

func (r *Renderer) renderPlanTable(summary *engine.ImportSummary) error {
	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, r.sprintf(colorHeading, "Import plan for scan %s (dry run)", summary.ScanID))
	fmt.Fprintf(w, "Would apply:\t%d\n", summary.WouldApply)
	fmt.Fprintf(w, "Would skip:\t%d\n", summary.WouldSkip)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "ACTION\tCATEGORY\tKEY\tRISK\tREASON")
	for _, planned := range summary.Plan {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			planned.Action, planned.Item.Category, planned.Item.Key,
			r.riskLabel(planned.Risk), planned.Reason)
	}

	fmt.Fprintln(w)
	for _, level := range []engine.RiskLevel{engine.RiskHigh, engine.RiskMedium, engine.RiskLow} {
		if n := summary.RiskCounts[level]; n > 0 {
			fmt.Fprintf(w, "%s risk:\t%d\n", level, n)
		}
	}
	return w.Flush()
}

func (r *Renderer) renderImportTable(summary *engine.ImportSummary) error {
	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, r.sprintf(colorHeading, "Imported scan %s", summary.ScanID))
	fmt.Fprintf(w, "Applied:\t%d\n", summary.Applied)
	fmt.Fprintf(w, "Skipped:\t%d\n", summary.Skipped)
	if summary.Failed > 0 {
		fmt.Fprintf(w, "Failed:\t%s\n", r.sprintf(colorRemoved, "%d", summary.Failed))
	} else {
		fmt.Fprintf(w, "Failed:\t0\n")
	}
	return w.Flush()
}

func (r *Renderer) riskLabel(level engine.RiskLevel) string {
	switch level {
	case engine.RiskHigh:
		return r.sprintf(colorHighRisk, "high")
	case engine.RiskMedium:
		return r.sprintf(colorModified, "medium")
	default:
		return r.sprintf(colorMuted, "low")
	}
}
