// Package output renders engine results for the terminal: aligned tables by
// default, JSON and YAML for scripting.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format selects a renderer.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnsupportedFormat makes a bad --format flag a hard usage error instead
// of a silent fallback.
var ErrUnsupportedFormat = fmt.Errorf("unsupported output format")

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q (supported: table, json, yaml)", ErrUnsupportedFormat, s)
	}
}

// Renderer writes formatted results to a single destination.
type Renderer struct {
	w       io.Writer
	noColor bool
}

// NewRenderer builds a renderer. noColor also honors downstream piping where
// the caller disabled color globally.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	return &Renderer{w: w, noColor: noColor}
}

func (r *Renderer) renderJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	_, err = fmt.Fprintln(r.w, string(raw))
	return err
}

func (r *Renderer) renderYAML(v any) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	_, err = r.w.Write(raw)
	return err
}

func (r *Renderer) sprintf(c *color.Color, format string, args ...any) string {
	if r.noColor {
		return fmt.Sprintf(format, args...)
	}
	return c.Sprintf(format, args...)
}

var (
	colorAdded    = color.New(color.FgGreen)
	colorModified = color.New(color.FgYellow)
	colorRemoved  = color.New(color.FgRed)
	colorHeading  = color.New(color.Bold)
	colorMuted    = color.New(color.Faint)
	colorHighRisk = color.New(color.FgRed, color.Bold)
)

// Success prints a green confirmation line.
func (r *Renderer) Success(format string, args ...any) {
	fmt.Fprintln(r.w, r.sprintf(colorAdded, format, args...))
}

// Warning prints a yellow caution line.
func (r *Renderer) Warning(format string, args ...any) {
	fmt.Fprintln(r.w, r.sprintf(colorModified, format, args...))
}

// Errorln prints a red failure line.
func (r *Renderer) Errorln(format string, args ...any) {
	fmt.Fprintln(r.w, r.sprintf(colorRemoved, format, args...))
}
