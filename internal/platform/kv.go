// Package platform holds the capability adapters the scanners depend on:
// a key-value store standing in for the registry, a file system, and the
// restore-point collaborator. Every adapter ships an in-memory fake that
// satisfies the same contract so scanner tests never touch the live OS.
package platform

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ValueType tags a stored value with its native encoding so writes can
// round-trip without re-deriving the type from the Go value.
type ValueType int

const (
	TypeNone ValueType = iota
	TypeString
	TypeExpandString
	TypeDWord
	TypeQWord
	TypeBinary
	TypeMultiString
)

// ErrValueNotFound reports that a key or value simply does not exist.
// Absence is not a failure: scanners skip the item and move on.
var ErrValueNotFound = errors.New("value not found")

// KeyValueStore is the registry capability. Paths are rooted,
// backslash-separated key paths such as `HKCU\Control Panel\Desktop`.
type KeyValueStore interface {
	Get(path, name string) (any, ValueType, error)
	Set(path, name string, value any, valueType ValueType) error
	GetAll(path string) (map[string]any, error)
	Exists(path string) bool
}

// MemoryKeyValueStore is the in-memory fake. Lookups are case-insensitive
// on both key paths and value names, matching the store it stands in for.
type MemoryKeyValueStore struct {
	mu   sync.RWMutex
	data map[string]map[string]memValue
}

type memValue struct {
	name  string
	value any
	typ   ValueType
}

// NewMemoryKeyValueStore seeds a fake store. The seed maps key paths to
// value-name/value pairs; types are inferred the way Set infers them.
func NewMemoryKeyValueStore(seed map[string]map[string]any) *MemoryKeyValueStore {
	s := &MemoryKeyValueStore{data: map[string]map[string]memValue{}}
	for path, values := range seed {
		for name, value := range values {
			_ = s.Set(path, name, value, TypeNone)
		}
	}
	return s
}

func (s *MemoryKeyValueStore) Get(path, name string) (any, ValueType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values, ok := s.data[strings.ToLower(path)]
	if !ok {
		return nil, TypeNone, ErrValueNotFound
	}
	v, ok := values[strings.ToLower(name)]
	if !ok {
		return nil, TypeNone, ErrValueNotFound
	}
	return v.value, v.typ, nil
}

func (s *MemoryKeyValueStore) Set(path, name string, value any, valueType ValueType) error {
	if valueType == TypeNone {
		valueType = inferType(value)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(path)
	if s.data[key] == nil {
		s.data[key] = map[string]memValue{}
	}
	s.data[key][strings.ToLower(name)] = memValue{name: name, value: value, typ: valueType}
	return nil
}

func (s *MemoryKeyValueStore) GetAll(path string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values, ok := s.data[strings.ToLower(path)]
	if !ok {
		return nil, ErrValueNotFound
	}
	out := make(map[string]any, len(values))
	for _, v := range values {
		out[v.name] = v.value
	}
	return out, nil
}

func (s *MemoryKeyValueStore) Exists(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[strings.ToLower(path)]
	return ok
}

// Names returns the value names under a key, sorted, for test assertions.
func (s *MemoryKeyValueStore) Names(path string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, v := range s.data[strings.ToLower(path)] {
		out = append(out, v.name)
	}
	sort.Strings(out)
	return out
}

func inferType(value any) ValueType {
	switch value.(type) {
	case string:
		return TypeString
	case int, int32, int64, uint32, uint64, bool:
		return TypeDWord
	case []byte:
		return TypeBinary
	case []string:
		return TypeMultiString
	default:
		return TypeString
	}
}
