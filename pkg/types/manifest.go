package types

import "time"

// SchemaVersion is the package schema this build reads and writes.
const SchemaVersion = "1.0.0"

// CreatedByTool names the producer recorded in exported manifests.
const CreatedByTool = "stylesmith"

// SourceSystem describes the machine a package was exported from.
type SourceSystem struct {
	OS       string `json:"os"`
	Version  string `json:"version"`
	Build    string `json:"build"`
	Hostname string `json:"hostname"`
	Username string `json:"username"`
}

// ExportOptions records what the exporting user asked to include.
type ExportOptions struct {
	IncludeFonts      bool `json:"include_fonts"`
	IncludeWallpapers bool `json:"include_wallpapers"`
	IncludeCursors    bool `json:"include_cursors"`
	IncludeTerminal   bool `json:"include_terminal"`
	IncludeVSCode     bool `json:"include_vscode"`
	IncludeBrowser    bool `json:"include_browser"`
}

// DefaultExportOptions matches what an interactive export selects when the
// user does not narrow the category list.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		IncludeFonts:      true,
		IncludeWallpapers: true,
		IncludeCursors:    true,
		IncludeTerminal:   true,
		IncludeVSCode:     true,
	}
}

// FontAsset is one font file physically copied into a package.
type FontAsset struct {
	Name   string `json:"name"`
	File   string `json:"file"`
	Family string `json:"family,omitempty"`
	Style  string `json:"style,omitempty"`
	SHA256 string `json:"sha256,omitempty"`
}

// Manifest is the manifest.json document at the root of every package.
// Written once at export time, read-only thereafter.
type Manifest struct {
	SchemaVersion string        `json:"schema_version"`
	Version       string        `json:"version"`
	CreatedAt     time.Time     `json:"created_at"`
	CreatedBy     string        `json:"created_by"`
	SourceSystem  SourceSystem  `json:"source_system"`
	ExportOptions ExportOptions `json:"export_options"`
	Categories    []string      `json:"categories"`
	Fonts         []FontAsset   `json:"fonts,omitempty"`
}

// NewManifest builds a manifest for a package created now on this machine.
func NewManifest(src SourceSystem, opts ExportOptions, categories []string, now time.Time) *Manifest {
	return &Manifest{
		SchemaVersion: SchemaVersion,
		Version:       "1.0.0",
		CreatedAt:     now,
		CreatedBy:     CreatedByTool,
		SourceSystem:  src,
		ExportOptions: opts,
		Categories:    append([]string(nil), categories...),
	}
}
