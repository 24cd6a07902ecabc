// Package logging assembles structured slog loggers used across mp3sync.
//
// It owns the console and JSON handlers, maps configured level names onto
// slog levels, and routes output to stderr plus an optional log file so that
// structured logs never interleave with the verbose progress lines written
// to stdout. A no-op logger is provided for tests and wiring code that cannot
// fail.
package logging
