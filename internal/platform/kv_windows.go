//go:build windows

package platform

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sys/windows/registry"
)

// RegistryStore is the live Windows registry behind the KeyValueStore
// contract.
type RegistryStore struct{}

// NewRegistryStore returns the real registry adapter.
func NewRegistryStore() *RegistryStore { return &RegistryStore{} }

var rootKeys = map[string]registry.Key{
	"HKLM":                registry.LOCAL_MACHINE,
	"HKEY_LOCAL_MACHINE":  registry.LOCAL_MACHINE,
	"HKCU":                registry.CURRENT_USER,
	"HKEY_CURRENT_USER":   registry.CURRENT_USER,
	"HKCR":                registry.CLASSES_ROOT,
	"HKEY_CLASSES_ROOT":   registry.CLASSES_ROOT,
	"HKU":                 registry.USERS,
	"HKEY_USERS":          registry.USERS,
}

func splitPath(path string) (registry.Key, string, error) {
	root, rest, found := strings.Cut(path, `\`)
	if !found {
		return 0, "", fmt.Errorf("invalid registry path %q", path)
	}
	key, ok := rootKeys[strings.ToUpper(root)]
	if !ok {
		return 0, "", fmt.Errorf("unknown root key %q", root)
	}
	return key, rest, nil
}

func (s *RegistryStore) Get(path, name string) (any, ValueType, error) {
	root, sub, err := splitPath(path)
	if err != nil {
		return nil, TypeNone, err
	}
	k, err := registry.OpenKey(root, sub, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, TypeNone, ErrValueNotFound
		}
		return nil, TypeNone, err
	}
	defer k.Close()
	return readValue(k, name)
}

func readValue(k registry.Key, name string) (any, ValueType, error) {
	if sv, _, err := k.GetStringValue(name); err == nil {
		return sv, TypeString, nil
	} else if errors.Is(err, registry.ErrNotExist) {
		return nil, TypeNone, ErrValueNotFound
	}
	if iv, _, err := k.GetIntegerValue(name); err == nil {
		return iv, TypeDWord, nil
	}
	if mv, _, err := k.GetStringsValue(name); err == nil {
		return mv, TypeMultiString, nil
	}
	bv, _, err := k.GetBinaryValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, TypeNone, ErrValueNotFound
		}
		return nil, TypeNone, err
	}
	return bv, TypeBinary, nil
}

func (s *RegistryStore) Set(path, name string, value any, valueType ValueType) error {
	root, sub, err := splitPath(path)
	if err != nil {
		return err
	}
	k, _, err := registry.CreateKey(root, sub, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	if valueType == TypeNone {
		valueType = inferType(value)
	}
	switch valueType {
	case TypeString:
		return k.SetStringValue(name, fmt.Sprintf("%v", value))
	case TypeExpandString:
		return k.SetExpandStringValue(name, fmt.Sprintf("%v", value))
	case TypeDWord:
		return k.SetDWordValue(name, toUint32(value))
	case TypeQWord:
		return k.SetQWordValue(name, toUint64(value))
	case TypeBinary:
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("binary value for %s\\%s is %T, not []byte", path, name, value)
		}
		return k.SetBinaryValue(name, b)
	case TypeMultiString:
		sv, ok := value.([]string)
		if !ok {
			return fmt.Errorf("multi-string value for %s\\%s is %T, not []string", path, name, value)
		}
		return k.SetStringsValue(name, sv)
	default:
		return k.SetStringValue(name, fmt.Sprintf("%v", value))
	}
}

func (s *RegistryStore) GetAll(path string) (map[string]any, error) {
	root, sub, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	k, err := registry.OpenKey(root, sub, registry.QUERY_VALUE|registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, ErrValueNotFound
		}
		return nil, err
	}
	defer k.Close()

	names, err := k.ReadValueNames(-1)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(names))
	for _, name := range names {
		value, _, err := readValue(k, name)
		if err != nil {
			continue
		}
		out[name] = value
	}
	return out, nil
}

func (s *RegistryStore) Exists(path string) bool {
	root, sub, err := splitPath(path)
	if err != nil {
		return false
	}
	k, err := registry.OpenKey(root, sub, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	k.Close()
	return true
}

func toUint32(value any) uint32 {
	switch v := value.(type) {
	case uint64:
		return uint32(v)
	case int64:
		return uint32(v)
	case int:
		return uint32(v)
	case float64:
		return uint32(v)
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func toUint64(value any) uint64 {
	switch v := value.(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	case int:
		return uint64(v)
	case float64:
		return uint64(v)
	default:
		return 0
	}
}
