// Package fontutil resolves font names to installed font files and reads
// version metadata out of the files themselves.
package fontutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/sfnt"

	"github.com/stylesmith/stylesmith/internal/platform"
)

// Machine-wide and per-user installed font listings.
const (
	MachineFontsKey = `HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\Fonts`
	UserFontsKey    = `HKCU\SOFTWARE\Microsoft\Windows NT\CurrentVersion\Fonts`
)

// genericFamilies are CSS generic family names that never map to a file.
var genericFamilies = map[string]bool{
	"serif":      true,
	"sans-serif": true,
	"sans":       true,
	"monospace":  true,
	"system-ui":  true,
	"cursive":    true,
	"fantasy":    true,
	"emoji":      true,
	"math":       true,
	"fangsong":   true,
}

// NormalizeFontName strips the parenthetical suffix installed-font listings
// carry ("Consolas (TrueType)" → "consolas") and collapses whitespace.
func NormalizeFontName(name string) string {
	base, _, _ := strings.Cut(name, "(")
	return strings.Join(strings.Fields(strings.ToLower(base)), " ")
}

// SplitFontFamilies parses a CSS-style comma list into concrete font names,
// discarding quotes and generic family keywords.
func SplitFontFamilies(fontFamily string) []string {
	var out []string
	for _, part := range strings.Split(fontFamily, ",") {
		name := strings.Trim(strings.TrimSpace(part), `'"`)
		if name == "" || genericFamilies[strings.ToLower(name)] {
			continue
		}
		out = append(out, name)
	}
	return out
}

// FindFontPaths resolves a font name to candidate files by cross-referencing
// the installed-font listings. Exact normalized matches come before fuzzy
// (substring) matches; duplicates collapse case-insensitively.
func FindFontPaths(store platform.KeyValueStore, fs platform.FileSystem, fontName string) []string {
	query := NormalizeFontName(fontName)
	if query == "" {
		return nil
	}

	var exact, fuzzy []string
	for _, key := range []string{MachineFontsKey, UserFontsKey} {
		values, err := store.GetAll(key)
		if err != nil {
			continue
		}
		for regName, regValue := range values {
			path := ResolveFontFile(fs, fmt.Sprintf("%v", regValue))
			if path == "" {
				continue
			}
			name := NormalizeFontName(regName)
			switch {
			case name == query:
				exact = append(exact, path)
			case strings.Contains(name, query) || strings.Contains(query, name):
				fuzzy = append(fuzzy, path)
			}
		}
	}
	return dedupe(append(exact, fuzzy...))
}

// FindFontPath returns the best single candidate, or "".
func FindFontPath(store platform.KeyValueStore, fs platform.FileSystem, fontName string) string {
	paths := FindFontPaths(store, fs, fontName)
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}

// ResolveFontFile turns a registry font value (usually a bare filename,
// sometimes an absolute path) into an existing file path, or "".
func ResolveFontFile(fs platform.FileSystem, value string) string {
	if value == "" {
		return ""
	}
	if filepath.IsAbs(value) || strings.Contains(value, `:\`) {
		if fs.Exists(value) {
			return value
		}
		return ""
	}

	systemRoot := os.Getenv("SystemRoot")
	if systemRoot == "" {
		systemRoot = `C:\Windows`
	}
	candidate := filepath.Join(systemRoot, "Fonts", value)
	if fs.Exists(candidate) {
		return candidate
	}

	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		userFont := filepath.Join(localAppData, "Microsoft", "Windows", "Fonts", value)
		if fs.Exists(userFont) {
			return userFont
		}
	}
	return ""
}

func dedupe(paths []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range paths {
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// FontVersion reads the version string (name table ID 5) out of a TrueType
// or OpenType file. TTC collections expose the first member's table.
func FontVersion(fs platform.FileSystem, path string) (string, error) {
	data, err := fs.ReadBytes(path)
	if err != nil {
		return "", err
	}
	// Font collections start with a ttcf header; the sfnt parser handles
	// collections through ParseCollection.
	if bytes.HasPrefix(data, []byte("ttcf")) {
		coll, err := sfnt.ParseCollection(data)
		if err != nil {
			return "", err
		}
		if coll.NumFonts() == 0 {
			return "", errors.New("empty font collection")
		}
		f, err := coll.Font(0)
		if err != nil {
			return "", err
		}
		return nameVersion(f)
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return "", err
	}
	return nameVersion(f)
}

func nameVersion(f *sfnt.Font) (string, error) {
	var buf sfnt.Buffer
	version, err := f.Name(&buf, sfnt.NameIDVersion)
	if err != nil {
		return "", err
	}
	return version, nil
}
