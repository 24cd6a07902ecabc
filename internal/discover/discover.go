// Package discover enumerates the input files of a sync run.
package discover

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// FLACExtension is the literal suffix of source files.
const FLACExtension = ".flac"

// ErrNoInputFiles reports a source directory without matching files. It is a
// distinct condition from a filesystem error.
var ErrNoInputFiles = errors.New("no input files")

// NoInputFilesError names the directory that produced no candidates.
type NoInputFilesError struct {
	Dir string
}

func (e *NoInputFilesError) Error() string {
	return fmt.Sprintf("Source directory \"%s\" contains no FLAC files.", e.Dir)
}

func (e *NoInputFilesError) Unwrap() error { return ErrNoInputFiles }

// List returns the names of the immediate non-directory entries of dir whose
// names end with suffix, sorted ascending by byte order.
func List(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), suffix) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// FLACFiles lists the FLAC files in dir. An empty result is reported as a
// *NoInputFilesError.
func FLACFiles(dir string) ([]string, error) {
	names, err := List(dir, FLACExtension)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, &NoInputFilesError{Dir: dir}
	}
	return names, nil
}
