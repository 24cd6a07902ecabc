// Package runlock guards a destination directory against concurrent mp3sync
// runs with an advisory file lock.
//
// Lock files live in the temp area rather than in the destination so the
// destination only ever contains converted audio.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another run holds the lock.
var ErrLocked = errors.New("another mp3sync run is using this destination")

// Lock is a held advisory lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file location for destDir inside lockDir.
func PathFor(lockDir, destDir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(destDir)))
	return filepath.Join(lockDir, "mp3sync-"+hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock at path without blocking.
func Acquire(path string) (*Lock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %q: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.path }

// Release unlocks. The lock file itself is left in place.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %q: %w", l.path, err)
	}
	return nil
}
