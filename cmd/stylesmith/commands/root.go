// Package commands wires the stylesmith CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stylesmith/stylesmith/internal/engine"
	"github.com/stylesmith/stylesmith/internal/logger"
	"github.com/stylesmith/stylesmith/internal/output"
	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "stylesmith",
	Short: "Scan, package, and restore Windows personalization settings",
	Long: `Stylesmith captures the personalization state of a Windows machine:
fonts and substitutions, terminal and shell profiles, theme colors,
wallpaper, cursors, and editor settings.

A scan classifies every setting against factory defaults, an export
bundles the differences (with their font, image, and config files) into
a portable package, and an import replays that package on another
machine with a dry-run plan and per-item risk grading.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the CLI and exits non-zero on any command failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("format", "", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newDiffCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newVersionCommand())
}

func initConfig(cmd *cobra.Command) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		loaded.Logging.Level = v
	}
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		loaded.Output.Format = v
	}
	if v, _ := cmd.Flags().GetBool("no-color"); v {
		loaded.Output.NoColor = true
	}
	cfg = loaded
	return nil
}

// newEngine builds an engine against the live platform adapters.
func newEngine() *engine.StyleEngine {
	return engine.New(engine.Config{
		Store:      platform.DefaultKeyValueStore(),
		FS:         platform.NewOSFileSystem(),
		Checkpoint: platform.DefaultCheckpoint(),
		Logger:     logger.New(cfg.Logging.Level),
	})
}

// resolveFormat merges the --format flag over the configured default and
// rejects anything unknown as a usage error.
func resolveFormat(cmd *cobra.Command) (output.Format, error) {
	value := cfg.Output.Format
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		value = v
	}
	format, err := output.ParseFormat(value)
	if err != nil {
		cmd.SilenceUsage = false
		return "", err
	}
	return format, nil
}

func newRenderer() *output.Renderer {
	return output.NewRenderer(os.Stdout, cfg.Output.NoColor)
}
