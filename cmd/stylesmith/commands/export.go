package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stylesmith/stylesmith/internal/engine"
	"github.com/stylesmith/stylesmith/pkg/types"
)

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "export <destination>",
		Short:        "Scan and package the current state",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		Long: `Export runs a scan and writes it as a portable package: manifest,
scan document, and the referenced asset files. A destination ending in
.zip produces a single archive.

Items at their factory defaults are left out unless --include-defaults
is set; font files are copied only with --include-font-files.`,
		Example: `  # Package the differences into a directory
  stylesmith export ./my-styles

  # Full archive including fonts
  stylesmith export styles.zip --include-defaults --include-font-files

  # Only wallpaper and cursor settings
  stylesmith export cursors.zip -c wallpaper -c cursor`,
		RunE: runExport,
	}

	cmd.Flags().StringSliceP("category", "c", nil, "limit to specific categories")
	cmd.Flags().Bool("include-defaults", false, "also package items at their default values")
	cmd.Flags().Bool("include-font-files", false, "copy font files into the package")
	cmd.Flags().Bool("no-assets", false, "write documents only, no asset files")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	destination := args[0]
	categories, _ := cmd.Flags().GetStringSlice("category")
	includeDefaults, _ := cmd.Flags().GetBool("include-defaults")
	includeFontFiles, _ := cmd.Flags().GetBool("include-font-files")
	noAssets, _ := cmd.Flags().GetBool("no-assets")

	e := newEngine()
	result, scanErr := e.ScanAll(mergeCategories(categories))
	if result == nil {
		return scanErr
	}

	renderer := newRenderer()
	if scanErr != nil {
		renderer.Warning("some scanners failed: %v", scanErr)
	}

	if !includeDefaults {
		trimmed := *result
		trimmed.Items = result.ModifiedItems()
		result = &trimmed
	}

	fontFiles := cfg.Export.IncludeFontFiles
	if cmd.Flags().Changed("include-font-files") {
		fontFiles = includeFontFiles
	}
	manifest, err := e.ExportPackage(result, destination, engine.ExportConfig{
		IncludeAssets:    cfg.Export.IncludeAssets && !noAssets,
		IncludeFontFiles: fontFiles,
		Options:          exportOptions(categories),
	})
	if err != nil {
		return fmt.Errorf("exporting package: %w", err)
	}

	renderer.Success("Exported %d items to %s", result.TotalCount(), destination)
	if len(manifest.Fonts) > 0 {
		renderer.Success("Packaged %d font files", len(manifest.Fonts))
	}
	return nil
}

// exportOptions records the user's category narrowing in the manifest.
func exportOptions(categories []string) types.ExportOptions {
	if len(categories) == 0 {
		return types.DefaultExportOptions()
	}
	var opts types.ExportOptions
	for _, c := range categories {
		switch c {
		case types.CategoryFonts:
			opts.IncludeFonts = true
		case types.CategoryWallpaper:
			opts.IncludeWallpapers = true
		case types.CategoryCursor:
			opts.IncludeCursors = true
		case types.CategoryTerminal:
			opts.IncludeTerminal = true
		case types.CategoryVSCode:
			opts.IncludeVSCode = true
		case types.CategoryBrowser:
			opts.IncludeBrowser = true
		}
	}
	return opts
}
