package engine

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stylesmith/stylesmith/pkg/types"
)

// Package structural failures. A package missing its documents is an
// explicit error result, never a partial package.
var (
	ErrManifestMissing     = errors.New("package has no manifest.json")
	ErrScanDocumentMissing = errors.New("package has no scan.json")
)

const (
	manifestFileName = "manifest.json"
	scanFileName     = "scan.json"
	assetsDirName    = "assets"
)

func (e *StyleEngine) writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return e.fs.WriteBytes(path, raw)
}

// LoadManifest reads a package's manifest document.
func (e *StyleEngine) LoadManifest(packageDir string) (*types.Manifest, error) {
	path := filepath.Join(packageDir, manifestFileName)
	if !e.fs.Exists(path) {
		return nil, ErrManifestMissing
	}
	raw, err := e.fs.ReadBytes(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var manifest types.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &manifest, nil
}

// LoadScanDocument reads a package's scan result document.
func (e *StyleEngine) LoadScanDocument(packageDir string) (*types.ScanResult, error) {
	path := filepath.Join(packageDir, scanFileName)
	if !e.fs.Exists(path) {
		return nil, ErrScanDocumentMissing
	}
	raw, err := e.fs.ReadBytes(path)
	if err != nil {
		return nil, fmt.Errorf("reading scan document: %w", err)
	}
	var result types.ScanResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parsing scan document: %w", err)
	}
	return &result, nil
}

// openPackage resolves a package source to a directory. Archives are
// extracted into a temporary directory; the returned cleanup must run on
// every exit path.
func (e *StyleEngine) openPackage(source string) (dir string, cleanup func(), err error) {
	if !strings.HasSuffix(strings.ToLower(source), ".zip") {
		if !e.fs.Exists(source) {
			return "", nil, fmt.Errorf("package %s does not exist", source)
		}
		return source, func() {}, nil
	}

	tmp, err := os.MkdirTemp("", "stylesmith-pkg-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating extraction dir: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(tmp) }

	if err := e.extractZip(source, tmp); err != nil {
		cleanup()
		return "", nil, err
	}
	return tmp, cleanup, nil
}

// zipDir archives a directory tree into a single zip written through the
// file adapter. Entry names use forward slashes per the zip spec.
func (e *StyleEngine) zipDir(srcDir, destZip string) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	var addDir func(dir, prefix string) error
	addDir = func(dir, prefix string) error {
		entries, err := e.fs.ListDir(dir)
		if err != nil {
			return err
		}
		sort.Strings(entries)
		for _, entry := range entries {
			name := prefix + filepath.Base(entry)
			content, err := e.fs.ReadBytes(entry)
			if err == nil {
				w, err := zw.Create(name)
				if err != nil {
					return err
				}
				if _, err := w.Write(content); err != nil {
					return err
				}
				continue
			}
			// Not a readable file: recurse as a directory.
			if err := addDir(entry, name+"/"); err != nil {
				return err
			}
		}
		return nil
	}

	if err := addDir(srcDir, ""); err != nil {
		_ = zw.Close()
		return fmt.Errorf("archiving package: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return e.fs.WriteBytes(destZip, buf.Bytes())
}

func (e *StyleEngine) extractZip(source, destDir string) error {
	raw, err := e.fs.ReadBytes(source)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		// Reject entries that would escape the extraction dir.
		cleaned := filepath.Clean(f.Name)
		if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
			return fmt.Errorf("archive entry %q escapes extraction directory", f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening archive entry %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return fmt.Errorf("reading archive entry %s: %w", f.Name, err)
		}
		if err := e.fs.WriteBytes(filepath.Join(destDir, cleaned), content); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}
