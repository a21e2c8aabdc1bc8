package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stylesmith/stylesmith/internal/catalog"
	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/internal/report"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "report",
		Short:        "Generate a human-readable scan report",
		SilenceUsage: true,
		Long: `Report scans the machine and explains what it found: which settings
are your customizations, which are normal differences between Windows
releases, and which open-source fonts are installed (with upstream
update checks unless disabled).`,
		Example: `  # Markdown to stdout
  stylesmith report

  # Standalone HTML page, no network access
  stylesmith report --report-format html --no-check-updates -o report.html`,
		RunE: runReport,
	}

	cmd.Flags().String("report-format", "markdown", "report format (markdown, html)")
	cmd.Flags().StringP("output", "o", "", "write the report to a file")
	cmd.Flags().Bool("check-updates", false, "check upstream font releases (default from config)")
	cmd.Flags().Bool("no-check-updates", false, "skip all network access")
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	reportFormat, _ := cmd.Flags().GetString("report-format")
	if reportFormat != "markdown" && reportFormat != "html" {
		cmd.SilenceUsage = false
		return fmt.Errorf("unsupported report format %q (supported: markdown, html)", reportFormat)
	}
	outputFile, _ := cmd.Flags().GetString("output")

	checkUpdates := cfg.Report.CheckUpdates
	if v, _ := cmd.Flags().GetBool("check-updates"); v {
		checkUpdates = true
	}
	if v, _ := cmd.Flags().GetBool("no-check-updates"); v {
		checkUpdates = false
	}

	e := newEngine()
	result, scanErr := e.ScanAll(cfg.Scan.Categories)
	if result == nil {
		return scanErr
	}

	renderer := newRenderer()
	if scanErr != nil {
		renderer.Warning("some scanners failed: %v", scanErr)
	}

	reportCfg := report.Config{
		Store: platform.DefaultKeyValueStore(),
		FS:    platform.NewOSFileSystem(),
	}
	if checkUpdates {
		reportCfg.Checker = catalog.NewUpdateChecker()
	}
	generator := report.New(result, reportCfg)

	var content string
	if reportFormat == "html" {
		content = generator.HTML(time.Now())
	} else {
		content = generator.Markdown(time.Now())
	}

	if outputFile == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	renderer.Success("Report written to %s", outputFile)
	return nil
}
