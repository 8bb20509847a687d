package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FS stores documents as files under a root directory. Writes go
// through a temp file in the destination directory followed by a
// rename, so readers never observe a partially written document.
type FS struct {
	root string
}

// NewFS returns a filesystem store rooted at dir. The directory itself
// is not created until the first Write beneath it.
func NewFS(dir string) *FS {
	return &FS{root: dir}
}

// Root returns the root directory of the store.
func (f *FS) Root() string { return f.root }

func (f *FS) abs(path string) string {
	return filepath.Join(f.root, filepath.FromSlash(path))
}

// Read returns the file content at path relative to the root.
func (f *FS) Read(path string) ([]byte, error) {
	return os.ReadFile(f.abs(path))
}

// Write atomically replaces the file at path relative to the root.
func (f *FS) Write(path string, data []byte) error {
	dst := f.abs(path)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Exists reports whether a file is present at path relative to the root.
func (f *FS) Exists(path string) bool {
	_, err := os.Stat(f.abs(path))
	return err == nil
}

// Remove deletes the file at path relative to the root. A missing file
// is not an error.
func (f *FS) Remove(path string) error {
	err := os.Remove(f.abs(path))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
