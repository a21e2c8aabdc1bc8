package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "diff <package-a> <package-b>",
		Short:        "Compare two packages",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(2),
		Long: `Diff compares the scan documents of two packages key by key and
reports what was added, removed, or modified between them.`,
		Example: `  stylesmith diff before.zip after.zip
  stylesmith diff ./laptop ./desktop --all --format json`,
		RunE: runDiff,
	}

	cmd.Flags().Bool("all", false, "also list keys with identical values")
	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	showAll, _ := cmd.Flags().GetBool("all")

	e := newEngine()
	diff, err := e.DiffPackages(args[0], args[1])
	if err != nil {
		return fmt.Errorf("diffing packages: %w", err)
	}
	return newRenderer().RenderDiff(diff, format, showAll)
}
