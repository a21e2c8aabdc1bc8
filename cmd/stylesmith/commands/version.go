package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/stylesmith/stylesmith/pkg/types"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// SetVersionInfo records build-time stamping from the main package.
func SetVersionInfo(v, c, t string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
	if t != "" {
		buildTime = t
	}
}

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run:   runVersion,
	}
	cmd.Flags().Bool("short", false, "show only the version number")
	return cmd
}

func runVersion(cmd *cobra.Command, args []string) {
	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Println(version)
		return
	}
	fmt.Printf("stylesmith %s\n", version)
	fmt.Printf("  commit:  %s\n", commit)
	fmt.Printf("  built:   %s\n", buildTime)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  schema:  %s\n", types.SchemaVersion)
}
