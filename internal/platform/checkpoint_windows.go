//go:build windows

package platform

import (
	"fmt"
	"os/exec"
)

// SystemRestoreCheckpoint shells out to Checkpoint-Computer. Creating a
// restore point needs elevation; the error surfaces to the caller, which
// treats it as fatal for the import rather than silently proceeding.
type SystemRestoreCheckpoint struct{}

func NewSystemRestoreCheckpoint() *SystemRestoreCheckpoint {
	return &SystemRestoreCheckpoint{}
}

func (c *SystemRestoreCheckpoint) Create(description string) error {
	cmd := exec.Command("powershell", "-NoProfile", "-Command",
		fmt.Sprintf("Checkpoint-Computer -Description %q -RestorePointType MODIFY_SETTINGS", description))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("restore point creation failed: %w: %s", err, out)
	}
	return nil
}
