// Package tempfile provides scoped temporary files for intermediate artifacts.
//
// Acquire pre-creates a uniquely named, zero-length file so the name cannot
// be claimed by anyone else, then closes it so an external tool may overwrite
// it. Callers defer Release, which deletes the file if it still exists and
// tolerates it already being gone.
package tempfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// File is a temporary file owned by a single scope.
type File struct {
	path string
}

// Acquire creates an empty file named prefix<random>suffix inside dir. An
// empty dir selects the system temp directory.
func Acquire(dir, prefix, suffix string) (*File, error) {
	f, err := os.CreateTemp(dir, prefix+"*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("close temp file: %w", err)
	}
	return &File{path: path}, nil
}

// Path returns the absolute location of the temporary file.
func (f *File) Path() string {
	return f.path
}

// Release removes the file. It is safe to call more than once and never
// reports a missing file.
func (f *File) Release() error {
	if f == nil || f.path == "" {
		return nil
	}
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove temp file %q: %w", f.path, err)
	}
	return nil
}
