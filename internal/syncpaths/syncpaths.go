// Package syncpaths resolves the source and destination working directories
// for a sync run.
package syncpaths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// maxSymlinks bounds symlink expansion, matching the kernel's ELOOP limit.
const maxSymlinks = 40

// Dirs holds the absolute, symlink-resolved working directories of a run.
type Dirs struct {
	Source string
	Dest   string
}

// Resolve appends relative to both base directories and canonicalizes the
// results. An empty relative selects the base directory itself. The
// directories do not need to exist yet.
func Resolve(sourceBase, destBase, relative string) (Dirs, error) {
	switch {
	case strings.TrimSpace(sourceBase) == "":
		return Dirs{}, errors.New("source directory is required")
	case strings.TrimSpace(destBase) == "":
		return Dirs{}, errors.New("destination directory is required")
	}

	src, err := Realpath(join(sourceBase, relative))
	if err != nil {
		return Dirs{}, fmt.Errorf("resolve source directory: %w", err)
	}
	dest, err := Realpath(join(destBase, relative))
	if err != nil {
		return Dirs{}, fmt.Errorf("resolve destination directory: %w", err)
	}
	return Dirs{Source: src, Dest: dest}, nil
}

// EnsureDest creates the destination directory and any missing ancestors.
func EnsureDest(dirs Dirs) error {
	if err := os.MkdirAll(dirs.Dest, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dirs.Dest, err)
	}
	return nil
}

// join concatenates without cleaning: ".." in relative must apply to the
// resolved base, not to its spelling.
func join(base, relative string) string {
	if relative == "" {
		return base
	}
	if filepath.IsAbs(relative) {
		return relative
	}
	return base + string(os.PathSeparator) + relative
}

// Realpath returns the absolute form of path with every symlink resolved
// before the ".." that follows it is applied. Components that do not exist
// are kept as written; a later ".." removes them again.
func Realpath(path string) (string, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		path = wd + string(os.PathSeparator) + path
	}

	resolved := string(os.PathSeparator)
	pending := splitPath(path)
	links := 0

	for len(pending) > 0 {
		name := pending[0]
		pending = pending[1:]

		switch name {
		case "", ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, name)
		info, err := os.Lstat(next)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
				resolved = next
				continue
			}
			return "", err
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			resolved = next
			continue
		}

		links++
		if links > maxSymlinks {
			return "", fmt.Errorf("resolve %q: %w", path, syscall.ELOOP)
		}
		target, err := os.Readlink(next)
		if err != nil {
			return "", err
		}
		if filepath.IsAbs(target) {
			resolved = string(os.PathSeparator)
		}
		pending = append(splitPath(target), pending...)
	}
	return resolved, nil
}

func splitPath(path string) []string {
	return strings.Split(path, string(os.PathSeparator))
}
