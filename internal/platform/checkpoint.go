package platform

// Checkpoint creates a system restore point before a batch of writes.
type Checkpoint interface {
	Create(description string) error
}

// NoopCheckpoint does nothing. Used in tests and on hosts without a restore
// facility.
type NoopCheckpoint struct{}

func (NoopCheckpoint) Create(string) error { return nil }

// FuncCheckpoint adapts a function, handy for asserting the engine invoked
// the collaborator.
type FuncCheckpoint func(description string) error

func (f FuncCheckpoint) Create(description string) error { return f(description) }
