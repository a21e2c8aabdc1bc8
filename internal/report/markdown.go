package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stylesmith/stylesmith/pkg/types"
)

// Markdown renders the full report as GitHub-flavored markdown.
func (g *Generator) Markdown(now time.Time) string {
	classified := g.Classify()
	var b strings.Builder

	b.WriteString("# Stylesmith Scan Report\n\n")
	fmt.Fprintf(&b, "**Generated**: %s\n\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Operating system**: %s\n", g.result.OSVersion)

	g.writeSummaryTable(&b, classified)
	g.writeCustomizations(&b, classified.UserCustomizations)
	g.writeDetectedFonts(&b, classified.DetectedFonts)
	g.writeVersionDifferences(&b, classified.VersionDifferences)

	if n := len(classified.SystemDefaults); n > 0 {
		b.WriteString("\n## Stock Configuration\n\n")
		fmt.Fprintf(&b, "*%d settings at their system defaults (hidden)*\n", n)
	}
	return b.String()
}

type categoryCounts struct{ custom, diff, stock int }

func (g *Generator) writeSummaryTable(b *strings.Builder, classified *Classification) {
	counts := map[string]*categoryCounts{}
	bump := func(items []types.ScannedItem, f func(*categoryCounts)) {
		for _, item := range items {
			c := counts[item.Category]
			if c == nil {
				c = &categoryCounts{}
				counts[item.Category] = c
			}
			f(c)
		}
	}
	bump(classified.UserCustomizations, func(c *categoryCounts) { c.custom++ })
	bump(classified.VersionDifferences, func(c *categoryCounts) { c.diff++ })
	bump(classified.SystemDefaults, func(c *categoryCounts) { c.stock++ })

	b.WriteString("\n## Summary\n\n")
	b.WriteString("| Category | Customized | OS Version Differences | Stock |\n")
	b.WriteString("|----------|-----------|------------------------|-------|\n")
	for _, category := range sortedKeys(counts) {
		c := counts[category]
		fmt.Fprintf(b, "| %s | %d | %d | %d |\n", category, c.custom, c.diff, c.stock)
	}
}

func (g *Generator) writeCustomizations(b *strings.Builder, items []types.ScannedItem) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n## Your Customizations\n")

	byCategory := map[string][]types.ScannedItem{}
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}
	for _, category := range sortedKeys(byCategory) {
		fmt.Fprintf(b, "\n### %s\n\n", titleCase(category))
		for _, item := range byCategory[category] {
			fmt.Fprintf(b, "- **%s**: `%v`", item.Key, item.CurrentValue)
			if item.DefaultValue != nil {
				fmt.Fprintf(b, " (default: %v)", item.DefaultValue)
			}
			b.WriteString("\n")
		}
	}
}

func (g *Generator) writeDetectedFonts(b *strings.Builder, fonts []DetectedFont) {
	if len(fonts) == 0 {
		return
	}
	b.WriteString("\n## Detected Open-Source Fonts\n\n")
	b.WriteString("| Font | Version | License | Description | Links |\n")
	b.WriteString("|------|---------|---------|-------------|-------|\n")

	seen := map[string]bool{}
	for _, detected := range fonts {
		if seen[detected.Record.Name] {
			continue
		}
		seen[detected.Record.Name] = true

		version := "unknown"
		if u := detected.Update; u != nil {
			local := u.CurrentVersion
			if local == "" {
				local = "unknown"
			}
			if u.HasUpdate {
				version = fmt.Sprintf("%s → **%s**", local, u.LatestVersion)
			} else {
				version = local + " (latest)"
			}
		}

		links := "-"
		if detected.Record.Homepage != "" {
			links = fmt.Sprintf("[homepage](%s)", detected.Record.Homepage)
		}
		if detected.Record.Download != "" {
			links += fmt.Sprintf(" / [download](%s)", detected.Record.Download)
		}

		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			detected.Record.Name, version, detected.Record.License,
			detected.Record.Description, links)
	}
}

func (g *Generator) writeVersionDifferences(b *strings.Builder, items []types.ScannedItem) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n## OS Version Differences\n\n")
	b.WriteString("> These vary between Windows releases and are not your customizations.\n\n")

	var named []types.ScannedItem
	for _, item := range items {
		if _, ok := g.catalog.SubstituteVersionDifference(item.Key); ok {
			named = append(named, item)
		}
	}
	for _, item := range named {
		fmt.Fprintf(b, "- `%s`: %v", item.Key, item.CurrentValue)
		if item.DefaultValue != nil {
			fmt.Fprintf(b, " (historically %v)", item.DefaultValue)
		}
		b.WriteString("\n")
	}
	if hidden := len(items) - len(named); hidden > 0 {
		fmt.Fprintf(b, "\n*%d font-linking entries hidden*\n", hidden)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
