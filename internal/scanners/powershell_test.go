package scanners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesmith/stylesmith/internal/platform"
	"github.com/stylesmith/stylesmith/pkg/types"
)

func TestPowerShellProfileScannerReadsBothGenerations(t *testing.T) {
	t.Setenv("USERPROFILE", `C:\Users\test`)

	fs := platform.NewMemFileSystem(map[string]string{
		`C:\Users\test\Documents\PowerShell\Microsoft.PowerShell_profile.ps1`:        "oh-my-posh init pwsh",
		`C:\Users\test\Documents\WindowsPowerShell\Microsoft.PowerShell_profile.ps1`: "Set-Alias ll ls",
	})

	scanner := NewPowerShellProfileScanner(platform.NewMemoryKeyValueStore(nil), fs)
	items, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "powershell.profile.PowerShell", items[0].Key)
	assert.Equal(t, "oh-my-posh init pwsh", items[0].CurrentValue)
	require.Len(t, items[0].AssociatedFiles, 1)
	assert.Equal(t, types.AssetScript, items[0].AssociatedFiles[0].Type)

	assert.Equal(t, "powershell.profile.WindowsPowerShell", items[1].Key)
}

func TestPowerShellProfileScannerApplyRetargetsCurrentUser(t *testing.T) {
	t.Setenv("USERPROFILE", `C:\Users\other`)

	fs := platform.NewMemFileSystem(nil)
	scanner := NewPowerShellProfileScanner(platform.NewMemoryKeyValueStore(nil), fs)

	// The item was scanned on a different machine; apply targets the
	// current user's matching flavor.
	ok := scanner.Apply(types.ScannedItem{
		Category:     types.CategoryTerminal,
		Key:          "powershell.profile.PowerShell",
		CurrentValue: "Write-Host imported",
		SourceType:   types.SourceFile,
		SourcePath:   `C:\Users\origin\Documents\PowerShell\Microsoft.PowerShell_profile.ps1`,
	})
	require.True(t, ok)

	content, err := fs.ReadText(`C:\Users\other\Documents\PowerShell\Microsoft.PowerShell_profile.ps1`)
	require.NoError(t, err)
	assert.Equal(t, "Write-Host imported", content)

	// Unknown flavors are refused rather than written somewhere surprising.
	assert.False(t, scanner.Apply(types.ScannedItem{Key: "powershell.profile.Bash"}))
}
