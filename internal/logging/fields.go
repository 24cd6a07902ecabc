package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies a single sync invocation.
	FieldRunID = "run_id"
	// FieldSource is the source file or directory being processed.
	FieldSource = "source"
	// FieldDest is the destination file or directory being produced.
	FieldDest = "dest"
	// FieldCommand is the external command line being executed.
	FieldCommand = "command"
	// FieldExitCode is the exit status reported by an external command.
	FieldExitCode = "exit_code"
	// FieldEventType categorizes warnings and errors for filtering.
	FieldEventType = "event_type"
)
