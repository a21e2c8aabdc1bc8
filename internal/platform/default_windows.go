//go:build windows

package platform

// DefaultKeyValueStore returns the live registry adapter.
func DefaultKeyValueStore() KeyValueStore { return NewRegistryStore() }

// DefaultCheckpoint returns the system restore point adapter.
func DefaultCheckpoint() Checkpoint { return NewSystemRestoreCheckpoint() }
