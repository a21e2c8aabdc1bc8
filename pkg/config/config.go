// Package config loads tool configuration from ~/.stylesmith/config.yaml
// and STYLESMITH_* environment variables, with working defaults when
// neither exists.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the complete stylesmith configuration.
type Config struct {
	Scan    ScanConfig    `mapstructure:"scan"`
	Export  ExportConfig  `mapstructure:"export"`
	Import  ImportConfig  `mapstructure:"import"`
	Report  ReportConfig  `mapstructure:"report"`
	Storage StorageConfig `mapstructure:"storage"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ScanConfig narrows which categories a scan covers. Empty means all.
type ScanConfig struct {
	Categories []string `mapstructure:"categories"`
}

// ExportConfig holds packaging defaults.
type ExportConfig struct {
	IncludeAssets    bool `mapstructure:"include_assets"`
	IncludeFontFiles bool `mapstructure:"include_font_files"`
}

// ImportConfig holds apply-time defaults.
type ImportConfig struct {
	CreateRestorePoint bool `mapstructure:"create_restore_point"`
}

// ReportConfig controls report generation.
type ReportConfig struct {
	CheckUpdates bool `mapstructure:"check_updates"`
}

// StorageConfig locates the tool's working directory, used for staged
// import assets.
type StorageConfig struct {
	BasePath string `mapstructure:"base_path"`
}

// OutputConfig contains terminal output defaults.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// LoggingConfig contains logging defaults.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{
			IncludeAssets:    true,
			IncludeFontFiles: true,
		},
		Import: ImportConfig{
			CreateRestorePoint: true,
		},
		Report: ReportConfig{
			CheckUpdates: true,
		},
		Storage: StorageConfig{
			BasePath: "~/.stylesmith",
		},
		Output: OutputConfig{
			Format:  "table",
			NoColor: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads ~/.stylesmith/config.yaml (then ./config.yaml), layers
// STYLESMITH_* environment variables on top, and fills the rest from
// defaults. A missing config file is not an error.
func Load() (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".stylesmith"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("STYLESMITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := config.ExpandPaths(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects configurations the commands cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.BasePath) == "" {
		return fmt.Errorf("storage base path is required")
	}
	switch c.Output.Format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q", c.Output.Format)
	}
	return nil
}

// ExpandPaths resolves "~" in configured paths.
func (c *Config) ExpandPaths() error {
	expanded, err := homedir.Expand(c.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("expanding storage base path: %w", err)
	}
	c.Storage.BasePath = expanded
	return nil
}
