package platform

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileSystem is the file capability scanners and the engine read and write
// through.
type FileSystem interface {
	ReadText(path string) (string, error)
	ReadBytes(path string) ([]byte, error)
	WriteText(path, content string) error
	WriteBytes(path string, content []byte) error
	Exists(path string) bool
	Copy(src, dst string) error
	Size(path string) (int64, error)
	Hash(path string) (string, error)
	ListDir(path string) ([]string, error)
}

// OSFileSystem is the real thing.
type OSFileSystem struct{}

func NewOSFileSystem() *OSFileSystem { return &OSFileSystem{} }

func (fs *OSFileSystem) ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (fs *OSFileSystem) ReadBytes(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (fs *OSFileSystem) WriteText(path, content string) error {
	return fs.WriteBytes(path, []byte(content))
}

func (fs *OSFileSystem) WriteBytes(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

func (fs *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (fs *OSFileSystem) Copy(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func (fs *OSFileSystem) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (fs *OSFileSystem) Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (fs *OSFileSystem) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, filepath.Join(path, e.Name()))
	}
	return out, nil
}

// ShortHash returns the first 8 hex characters of the SHA-256 of a string.
// Used to derive collision-free asset filenames.
func ShortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}

// MemFileSystem is the in-memory fake. Paths are matched verbatim after
// separator normalization, so Windows-style fixtures work on any host.
type MemFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	names map[string]string
}

func NewMemFileSystem(files map[string]string) *MemFileSystem {
	fs := &MemFileSystem{files: map[string][]byte{}, names: map[string]string{}}
	for path, content := range files {
		fs.files[normKey(path)] = []byte(content)
		fs.names[normKey(path)] = path
	}
	return fs
}

func normKey(path string) string {
	return strings.ToLower(strings.ReplaceAll(path, `\`, "/"))
}

func (fs *MemFileSystem) ReadText(path string) (string, error) {
	b, err := fs.ReadBytes(path)
	return string(b), err
}

func (fs *MemFileSystem) ReadBytes(path string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	b, ok := fs.files[normKey(path)]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return append([]byte(nil), b...), nil
}

func (fs *MemFileSystem) WriteText(path, content string) error {
	return fs.WriteBytes(path, []byte(content))
}

func (fs *MemFileSystem) WriteBytes(path string, content []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[normKey(path)] = append([]byte(nil), content...)
	fs.names[normKey(path)] = path
	return nil
}

func (fs *MemFileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	key := normKey(path)
	if _, ok := fs.files[key]; ok {
		return true
	}
	// Directory existence: any file under the prefix.
	prefix := strings.TrimSuffix(key, "/") + "/"
	for p := range fs.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (fs *MemFileSystem) Copy(src, dst string) error {
	b, err := fs.ReadBytes(src)
	if err != nil {
		return err
	}
	return fs.WriteBytes(dst, b)
}

func (fs *MemFileSystem) Size(path string) (int64, error) {
	b, err := fs.ReadBytes(path)
	if err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

func (fs *MemFileSystem) Hash(path string) (string, error) {
	b, err := fs.ReadBytes(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func (fs *MemFileSystem) ListDir(path string) ([]string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	prefix := strings.TrimSuffix(normKey(path), "/") + "/"
	seen := map[string]bool{}
	var out []string
	for p := range fs.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		// Recover the caller-supplied casing; the normalized key and the
		// original path have identical lengths.
		rest := fs.names[p][len(prefix):]
		name := rest
		if idx := strings.IndexAny(rest, `/\`); idx >= 0 {
			name = rest[:idx]
		}
		full := strings.TrimSuffix(path, "/") + "/" + name
		if !seen[full] {
			seen[full] = true
			out = append(out, full)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("directory %s not found", path)
	}
	sort.Strings(out)
	return out, nil
}
