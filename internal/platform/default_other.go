//go:build !windows

package platform

// DefaultKeyValueStore returns an empty in-memory store on hosts without a
// registry. Scans find nothing; absence is not an error.
func DefaultKeyValueStore() KeyValueStore { return NewMemoryKeyValueStore(nil) }

// DefaultCheckpoint returns the no-op checkpoint; there is no restore point
// facility to call.
func DefaultCheckpoint() Checkpoint { return NoopCheckpoint{} }
