package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store writes rendered style sheets under a base directory.
type Store struct {
	baseDir string
	mu      sync.Mutex
}

// New creates a new Store instance with the given base directory.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// EnsureDirs creates the necessary directory structure for exported sheets.
func (s *Store) EnsureDirs() error {
	return os.MkdirAll(filepath.Join(s.baseDir, "themes"), 0o755)
}

// SaveStylesheet writes css to themes/<template>/<name>.css and returns the path.
func (s *Store) SaveStylesheet(template, name, css string) (string, error) {
	if err := validName(template); err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	if err := validName(name); err != nil {
		return "", fmt.Errorf("stylesheet: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.baseDir, "themes", template)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name+".css")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(css), 0o644); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return path, nil
}

// ListStylesheets returns the exported sheets as slash-separated paths
// relative to the themes directory, sorted.
func (s *Store) ListStylesheets() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := filepath.Join(s.baseDir, "themes")
	var out []string

	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".css" {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	sort.Strings(out)
	return out, nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}
