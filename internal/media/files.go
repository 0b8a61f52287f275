// Package media manages the binary image files backing leaf lessons.
//
// The store of record is the database; files here are subordinate to it.
// Deletion is idempotent and delete failures are reported but expected to
// be swallowed by callers (a missing file is never fatal).
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// FileStore copies, reads, writes and deletes lesson image files under a
// single root directory. The filesystem is abstracted so tests can run
// against an in-memory one.
type FileStore struct {
	fs   afero.Fs
	root string
}

// New creates a FileStore rooted at dir on the given filesystem.
func New(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, root: dir}
}

// NewOS creates a FileStore rooted at dir on the real filesystem.
func NewOS(dir string) *FileStore {
	return New(afero.NewOsFs(), dir)
}

// Root returns the store's root directory.
func (f *FileStore) Root() string {
	return f.root
}

// Import copies an external image into the store and returns the stored
// path. The stored name keeps the source extension but is suffixed with a
// random id so duplicate source names never collide.
func (f *FileStore) Import(srcPath string) (string, error) {
	data, err := afero.ReadFile(f.fs, srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to read source image: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	name := fmt.Sprintf("%s_%s%s", base, uuid.NewString(), Extension(srcPath))
	dest := filepath.Join(f.root, name)

	if err := f.Write(dest, data); err != nil {
		return "", err
	}
	return dest, nil
}

// Write stores data at the given path, creating parent directories as
// needed.
func (f *FileStore) Write(path string, data []byte) error {
	if err := f.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := afero.WriteFile(f.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Read returns the contents of a stored file.
func (f *FileStore) Read(path string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Exists reports whether a stored file is resolvable.
func (f *FileStore) Exists(path string) bool {
	ok, err := afero.Exists(f.fs, path)
	return err == nil && ok
}

// Delete removes a stored file. Deleting an absent file is a no-op.
func (f *FileStore) Delete(path string) error {
	err := f.fs.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Extension returns the path's extension including the dot, defaulting
// to ".jpg" when the last path segment has none.
func Extension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" || ext == "." {
		return ".jpg"
	}
	return ext
}
