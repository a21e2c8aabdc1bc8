package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stylesmith/stylesmith/internal/engine"
)

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "import <package>",
		Short:        "Apply a package to this machine",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		Long: `Import loads a package (directory or .zip), stages any asset files
whose original path does not exist here, and writes each item back
through its scanner. Readonly items and items no scanner claims are
skipped; one failing item never aborts the rest.

A system restore point is created first unless --skip-restore-point
is given. Use --dry-run to see the per-item plan and risk grading
without writing anything.`,
		Example: `  # See what would change
  stylesmith import styles.zip --dry-run

  # Apply for real
  stylesmith import styles.zip

  # Apply without a restore point
  stylesmith import ./my-styles --skip-restore-point`,
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "plan only, write nothing")
	cmd.Flags().Bool("skip-restore-point", false, "do not create a system restore point first")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skipRestore, _ := cmd.Flags().GetBool("skip-restore-point")

	e := newEngine()
	summary, err := e.ImportPackage(args[0], engine.ImportOptions{
		DryRun:             dryRun,
		CreateRestorePoint: cfg.Import.CreateRestorePoint && !skipRestore,
	})
	if err != nil {
		return fmt.Errorf("importing package: %w", err)
	}

	renderer := newRenderer()
	if err := renderer.RenderImport(summary, format); err != nil {
		return err
	}
	if !dryRun && summary.Failed > 0 {
		return fmt.Errorf("%d items failed to apply", summary.Failed)
	}
	return nil
}
