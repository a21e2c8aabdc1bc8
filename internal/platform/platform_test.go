package platform

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAbsenceIsNotAnError(t *testing.T) {
	store := NewMemoryKeyValueStore(nil)

	_, _, err := store.Get(`HKCU\Control Panel\Desktop`, "Wallpaper")
	assert.True(t, errors.Is(err, ErrValueNotFound))

	_, err = store.GetAll(`HKCU\Control Panel\Desktop`)
	assert.True(t, errors.Is(err, ErrValueNotFound))
	assert.False(t, store.Exists(`HKCU\Control Panel\Desktop`))
}

func TestMemoryStoreCaseInsensitiveLookup(t *testing.T) {
	store := NewMemoryKeyValueStore(map[string]map[string]any{
		`HKCU\Control Panel\Desktop`: {"Wallpaper": `C:\wall.jpg`},
	})

	v, typ, err := store.Get(`hkcu\control panel\desktop`, "wallpaper")
	require.NoError(t, err)
	assert.Equal(t, `C:\wall.jpg`, v)
	assert.Equal(t, TypeString, typ)

	all, err := store.GetAll(`HKCU\CONTROL PANEL\DESKTOP`)
	require.NoError(t, err)
	// Original value-name casing is preserved in enumeration.
	assert.Contains(t, all, "Wallpaper")
}

func TestMemoryStoreSetInfersType(t *testing.T) {
	store := NewMemoryKeyValueStore(nil)
	require.NoError(t, store.Set(`HKCU\k`, "s", "text", TypeNone))
	require.NoError(t, store.Set(`HKCU\k`, "d", 7, TypeNone))
	require.NoError(t, store.Set(`HKCU\k`, "b", []byte{1, 2}, TypeNone))

	_, typ, _ := store.Get(`HKCU\k`, "s")
	assert.Equal(t, TypeString, typ)
	_, typ, _ = store.Get(`HKCU\k`, "d")
	assert.Equal(t, TypeDWord, typ)
	_, typ, _ = store.Get(`HKCU\k`, "b")
	assert.Equal(t, TypeBinary, typ)
}

func TestMemFileSystemRoundTrip(t *testing.T) {
	fs := NewMemFileSystem(map[string]string{
		`C:\Users\a\Documents\PowerShell\profile.ps1`: "Write-Host hi",
	})

	content, err := fs.ReadText(`C:\Users\a\Documents\PowerShell\profile.ps1`)
	require.NoError(t, err)
	assert.Equal(t, "Write-Host hi", content)

	assert.True(t, fs.Exists(`C:\Users\a\Documents\PowerShell`))
	assert.False(t, fs.Exists(`C:\Users\a\Videos`))

	require.NoError(t, fs.WriteText(`C:\out\x.txt`, "data"))
	size, err := fs.Size(`C:\out\x.txt`)
	require.NoError(t, err)
	assert.Equal(t, int64(4), size)

	require.NoError(t, fs.Copy(`C:\out\x.txt`, `C:\out\y.txt`))
	h1, _ := fs.Hash(`C:\out\x.txt`)
	h2, _ := fs.Hash(`C:\out\y.txt`)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestOSFileSystemCopyAndHash(t *testing.T) {
	fs := NewOSFileSystem()
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "nested", "dst.bin")

	require.NoError(t, fs.WriteBytes(src, []byte("payload")))
	require.NoError(t, fs.Copy(src, dst))

	hSrc, err := fs.Hash(src)
	require.NoError(t, err)
	hDst, err := fs.Hash(dst)
	require.NoError(t, err)
	assert.Equal(t, hSrc, hDst)
}

func TestExpandVars(t *testing.T) {
	t.Setenv("APPDATA", `C:\Users\a\AppData\Roaming`)

	assert.Equal(t,
		`C:\Users\a\AppData\Roaming\Code\User\settings.json`,
		ExpandVars(`%APPDATA%\Code\User\settings.json`))

	// Unknown variables survive untouched.
	assert.Equal(t, `%NOPE%\x`, ExpandVars(`%NOPE%\x`))
}

func TestExpandPSVars(t *testing.T) {
	t.Setenv("POSH_THEMES_PATH", `C:\posh\themes`)
	assert.Equal(t, `C:\posh\themes\jan.omp.json`, ExpandPSVars(`$env:POSH_THEMES_PATH\jan.omp.json`))
}

func TestCollapseVarsPrefersLongestMatch(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "alice")
	appdata := filepath.Join(profile, "AppData", "Roaming")
	t.Setenv("USERPROFILE", profile)
	t.Setenv("APPDATA", appdata)

	collapsed := CollapseVars(filepath.Join(appdata, "Code"))
	assert.Equal(t, "%APPDATA%"+string(filepath.Separator)+"Code", collapsed)

	outside := filepath.Join(string(filepath.Separator), "opt", "elsewhere")
	assert.Equal(t, outside, CollapseVars(outside))
}

func TestStripDevicePrefix(t *testing.T) {
	assert.Equal(t, `C:\Windows\Cursors\aero_arrow.cur`, StripDevicePrefix(`\??\C:\Windows\Cursors\aero_arrow.cur`))
	assert.Equal(t, `aero_arrow.cur`, StripDevicePrefix(`aero_arrow.cur`))
}
