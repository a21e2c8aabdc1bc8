package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "scan",
		Short:        "Scan the current personalization state",
		SilenceUsage: true,
		Long: `Scan reads fonts, terminal, theme, wallpaper, cursor, and editor
settings and classifies each against the factory defaults baseline.`,
		Example: `  # Full scan
  stylesmith scan

  # Only fonts and theme, as JSON
  stylesmith scan --category fonts --category theme --format json

  # Save the scan document for a later export or diff
  stylesmith scan --output scan.json --modified-only`,
		RunE: runScan,
	}

	cmd.Flags().StringSliceP("category", "c", nil, "limit to specific categories")
	cmd.Flags().StringP("output", "o", "", "write the scan document to a file")
	cmd.Flags().Bool("modified-only", false, "only show items that differ from defaults")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	categories, _ := cmd.Flags().GetStringSlice("category")
	outputFile, _ := cmd.Flags().GetString("output")
	modifiedOnly, _ := cmd.Flags().GetBool("modified-only")

	e := newEngine()
	result, scanErr := e.ScanAll(mergeCategories(categories))
	if result == nil {
		return scanErr
	}

	if modifiedOnly {
		filtered := *result
		filtered.Items = result.ModifiedItems()
		result = &filtered
	}

	renderer := newRenderer()
	if scanErr != nil {
		renderer.Warning("some scanners failed: %v", scanErr)
	}
	if err := renderer.RenderScan(result, format); err != nil {
		return err
	}

	if outputFile != "" {
		raw, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding scan document: %w", err)
		}
		if err := os.WriteFile(outputFile, raw, 0o644); err != nil {
			return fmt.Errorf("writing scan document: %w", err)
		}
		renderer.Success("Scan written to %s", outputFile)
	}
	return nil
}

// mergeCategories prefers explicit flags over the configured narrowing.
func mergeCategories(flags []string) []string {
	if len(flags) > 0 {
		return flags
	}
	return cfg.Scan.Categories
}
