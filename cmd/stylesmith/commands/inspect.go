package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "inspect <package>",
		Short:        "Summarize a package without importing it",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		Long: `Inspect shows a package's manifest, per-category item counts, and the
packaged asset files with their sizes.`,
		Example: `  stylesmith inspect styles.zip`,
		RunE:    runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}

	e := newEngine()
	info, err := e.InspectPackage(args[0])
	if err != nil {
		return fmt.Errorf("inspecting package: %w", err)
	}
	return newRenderer().RenderInspect(info, format)
}
