package main

import (
	"errors"
	"fmt"
	"io"

	"mp3sync/internal/discover"
	"mp3sync/internal/toolexec"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitNoInput = 2
)

// exitCode maps a command error onto the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, discover.ErrNoInputFiles) {
		return exitNoInput
	}
	var cmdErr *toolexec.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return exitFailure
}

// report writes err to stderr the way the sync tool always has and returns
// the exit status. A failed tool contributes only its captured output.
func report(stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}
	var cmdErr *toolexec.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Interrupted {
			fmt.Fprintln(stderr)
		}
		fmt.Fprintln(stderr, cmdErr.Output)
		return exitCode(err)
	}
	fmt.Fprintln(stderr, err)
	return exitCode(err)
}
