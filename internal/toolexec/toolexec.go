package toolexec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"syscall"

	"mp3sync/internal/logging"
)

var commandContext = exec.CommandContext

const (
	// InterruptExitCode is reported when a run is interrupted by the user.
	InterruptExitCode = 255
	// InterruptMessage stands in for captured output after an interrupt.
	InterruptMessage = "Terminated by keyboard interrupt"
)

// CommandError describes a failed external invocation.
type CommandError struct {
	Args        []string
	ExitCode    int
	Output      string
	Interrupted bool
}

func (e *CommandError) Error() string {
	if len(e.Args) == 0 {
		if e.Interrupted {
			return "interrupted"
		}
		return fmt.Sprintf("command exited with status %d", e.ExitCode)
	}
	if e.Interrupted {
		return fmt.Sprintf("%s interrupted", e.Args[0])
	}
	return fmt.Sprintf("%s exited with status %d", e.Args[0], e.ExitCode)
}

// Runner executes an external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct {
	logger *slog.Logger
}

// NewRunner constructs an ExecRunner. A nil logger discards output.
func NewRunner(logger *slog.Logger) *ExecRunner {
	return &ExecRunner{logger: logging.NewComponentLogger(logger, "toolexec")}
}

// Run starts name with args, waits for it, and discards its output on
// success. Failures are returned as *CommandError; a command that cannot be
// started at all is returned as a wrapped exec error.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	argv := append([]string{name}, args...)
	if ctx.Err() != nil {
		return NewInterruptError(argv...)
	}

	commandLine := strings.Join(argv, " ")
	r.logger.Debug("running command", logging.String(logging.FieldCommand, commandLine))

	cmd := commandContext(ctx, name, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		r.logger.Info("command interrupted", logging.String(logging.FieldCommand, commandLine))
		return NewInterruptError(argv...)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("run %s: %w", name, err)
	}

	cmdErr := &CommandError{
		Args:     argv,
		ExitCode: exitErr.ExitCode(),
		Output:   string(output),
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		if status.Signal() == syscall.SIGINT {
			return NewInterruptError(argv...)
		}
		cmdErr.ExitCode = 128 + int(status.Signal())
	}
	r.logger.Info("command failed",
		logging.String(logging.FieldCommand, commandLine),
		logging.Int(logging.FieldExitCode, cmdErr.ExitCode),
		logging.String(logging.FieldEventType, "command_failed"),
	)
	return cmdErr
}

// NewInterruptError builds the failure reported when the user interrupts a run.
func NewInterruptError(argv ...string) *CommandError {
	return &CommandError{
		Args:        argv,
		ExitCode:    InterruptExitCode,
		Output:      InterruptMessage,
		Interrupted: true,
	}
}

var _ Runner = (*ExecRunner)(nil)
