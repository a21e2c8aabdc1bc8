package platform

import (
	"fmt"
	"os"
	"os/user"
	"runtime"

	"github.com/stylesmith/stylesmith/pkg/types"
)

const currentVersionKey = `HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion`

// ProbeSourceSystem describes the local machine for the package manifest.
// OS details come through the key-value store so the probe works against
// the fake in tests.
func ProbeSourceSystem(store KeyValueStore) types.SourceSystem {
	src := types.SourceSystem{OS: runtime.GOOS}

	if product, _, err := store.Get(currentVersionKey, "ProductName"); err == nil {
		src.OS = fmt.Sprintf("%v", product)
	}
	if display, _, err := store.Get(currentVersionKey, "DisplayVersion"); err == nil {
		src.Version = fmt.Sprintf("%v", display)
	}
	if build, _, err := store.Get(currentVersionKey, "CurrentBuildNumber"); err == nil {
		src.Build = fmt.Sprintf("%v", build)
	}

	if host, err := os.Hostname(); err == nil {
		src.Hostname = host
	}
	if u, err := user.Current(); err == nil {
		src.Username = u.Username
	}
	return src
}

// OSVersionString is the one-line version recorded on scan results.
func OSVersionString(store KeyValueStore) string {
	src := ProbeSourceSystem(store)
	if src.Version == "" && src.Build == "" {
		return src.OS
	}
	return fmt.Sprintf("%s %s (build %s)", src.OS, src.Version, src.Build)
}
