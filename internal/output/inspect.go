package output

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/stylesmith/stylesmith/internal/engine"
)

// RenderInspect writes a package summary.
func (r *Renderer) RenderInspect(info *engine.InspectInfo, format Format) error {
	switch format {
	case FormatJSON:
		return r.renderJSON(info)
	case FormatYAML:
		return r.renderYAML(info)
	default:
		return r.renderInspectTable(info)
	}
}

func (r *Renderer) renderInspectTable(info *engine.InspectInfo) error {
	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, r.sprintf(colorHeading, "Package %s", info.Source))
	fmt.Fprintf(w, "Scan ID:\t%s\n", info.ScanID)
	fmt.Fprintf(w, "OS:\t%s\n", info.OSVersion)
	if m := info.Manifest; m != nil {
		fmt.Fprintf(w, "Created:\t%s by %s %s\n", m.CreatedAt.Format("2006-01-02 15:04"), m.CreatedBy, m.Version)
		fmt.Fprintf(w, "Source system:\t%s %s (%s)\n", m.SourceSystem.OS, m.SourceSystem.Version, m.SourceSystem.Hostname)
	} else {
		fmt.Fprintln(w, r.sprintf(colorModified, "No manifest (package predates manifests)"))
	}
	fmt.Fprintf(w, "Items:\t%d (%d differ from defaults)\n", info.ItemCount, info.ModifiedCount)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "CATEGORY\tITEMS")
	categories := make([]string, 0, len(info.Summary))
	for category := range info.Summary {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(w, "%s\t%d\n", category, info.Summary[category])
	}

	if len(info.Assets) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "ASSET\tCATEGORY\tSIZE")
		for _, asset := range info.Assets {
			fmt.Fprintf(w, "%s\t%s\t%s\n", asset.Name, asset.Category, humanize.Bytes(uint64(asset.SizeBytes)))
		}
		fmt.Fprintf(w, "Total:\t\t%s\n", humanize.Bytes(uint64(info.AssetTotalBytes)))
	}
	return w.Flush()
}
