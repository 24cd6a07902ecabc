// Package deps reports whether the external tools and directories a sync run
// relies on are usable.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"mp3sync/internal/config"
)

// Requirement defines an external binary mp3sync invokes.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the tools configured in cfg.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FLAC decoder",
			Command:     cfg.Tools.FlacBinary,
			Description: "Decodes FLAC sources to WAV",
		},
		{
			Name:        "LAME encoder",
			Command:     cfg.Tools.LameBinary,
			Description: "Encodes WAV to MP3",
		},
	}
}

// CheckBinaries resolves each requirement on PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch resolved, err := exec.LookPath(cmd); {
		case cmd == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		default:
			status.Available = true
			status.Detail = resolved
		}
		results = append(results, status)
	}
	return results
}

// MissingRequired reports whether any non-optional requirement is unavailable.
func MissingRequired(statuses []Status) bool {
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			return true
		}
	}
	return false
}

// Access is the permission set a directory check requires.
type Access uint32

const (
	// Readable is what a source directory needs: list and read.
	Readable Access = unix.R_OK | unix.X_OK
	// Writable is what a destination or temp directory needs.
	Writable Access = unix.R_OK | unix.W_OK | unix.X_OK
)

func (a Access) String() string {
	if a&unix.W_OK != 0 {
		return "read/write"
	}
	return "read"
}

// DirStatus reports the result of a directory check.
type DirStatus struct {
	Name   string
	Path   string
	Passed bool
	Detail string
}

// CheckDirectory verifies that path is an existing directory with the
// requested access. When allowMissing is set a missing directory passes as
// long as it could be created later.
func CheckDirectory(name, path string, want Access, allowMissing bool) DirStatus {
	status := DirStatus{Name: name, Path: path}
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err) && allowMissing:
		status.Passed = true
		status.Detail = "will be created"
		return status
	case os.IsNotExist(err):
		status.Detail = "does not exist"
		return status
	case err != nil:
		status.Detail = fmt.Sprintf("stat: %v", err)
		return status
	case !info.IsDir():
		status.Detail = "is not a directory"
		return status
	}
	if err := unix.Access(path, uint32(want)); err != nil {
		status.Detail = fmt.Sprintf("insufficient permissions: %v", err)
		return status
	}
	status.Passed = true
	status.Detail = want.String() + " ok"
	return status
}
