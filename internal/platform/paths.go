package platform

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// commonVars are the environment variables worth collapsing paths against
// when exporting, longest value first so %LOCALAPPDATA% beats %USERPROFILE%.
var commonVars = []string{
	"USERPROFILE",
	"APPDATA",
	"LOCALAPPDATA",
	"TEMP",
	"TMP",
	"PROGRAMDATA",
	"PROGRAMFILES",
	"PROGRAMFILES(X86)",
	"WINDIR",
	"SYSTEMROOT",
	"SYSTEMDRIVE",
}

var percentVar = regexp.MustCompile(`%([^%]+)%`)

// ExpandVars expands %NAME% style environment references. Unknown variables
// are left untouched rather than collapsed to empty, so a path scanned on
// another machine stays recognizable.
func ExpandVars(path string) string {
	return percentVar.ReplaceAllStringFunc(path, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v
		}
		if v, ok := os.LookupEnv(strings.ToUpper(name)); ok && v != "" {
			return v
		}
		return m
	})
}

var psEnvVar = regexp.MustCompile(`\$env:([A-Za-z_][A-Za-z0-9_]*)`)

// ExpandPSVars additionally expands PowerShell `$env:NAME` references, which
// appear inside shell profile scripts.
func ExpandPSVars(path string) string {
	expanded := psEnvVar.ReplaceAllStringFunc(path, func(m string) string {
		name := strings.TrimPrefix(m, "$env:")
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v
		}
		if v, ok := os.LookupEnv(strings.ToUpper(name)); ok && v != "" {
			return v
		}
		return m
	})
	return ExpandVars(expanded)
}

// CollapseVars replaces the user-specific prefix of an absolute path with
// the matching %VAR% placeholder so exported paths survive the move to
// another account.
func CollapseVars(path string) string {
	type candidate struct {
		name  string
		value string
	}
	var candidates []candidate
	for _, name := range commonVars {
		if v := os.Getenv(name); v != "" {
			candidates = append(candidates, candidate{name, filepath.Clean(v)})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].value) > len(candidates[j].value)
	})

	cleaned := filepath.Clean(path)
	for _, c := range candidates {
		if len(cleaned) >= len(c.value) && strings.EqualFold(cleaned[:len(c.value)], c.value) {
			return "%" + c.name + "%" + cleaned[len(c.value):]
		}
	}
	return path
}

// NormalizePath expands variables and resolves to an absolute, cleaned path.
func NormalizePath(path string) string {
	expanded := ExpandVars(path)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return filepath.Clean(expanded)
	}
	return abs
}

// IsUnderUserProfile reports whether a path lives inside the current user's
// profile directory.
func IsUnderUserProfile(path string) bool {
	profile := os.Getenv("USERPROFILE")
	if profile == "" {
		profile, _ = os.UserHomeDir()
	}
	if profile == "" {
		return false
	}
	p := NormalizePath(path)
	base := NormalizePath(profile)
	return len(p) >= len(base) && strings.EqualFold(p[:len(base)], base)
}

// StripDevicePrefix removes the `\??\` device-path prefix some cursor shape
// values carry.
func StripDevicePrefix(path string) string {
	return strings.TrimPrefix(path, `\??\`)
}
