// Package toolexec runs external command-line tools and reports their
// failures uniformly.
//
// Every invocation captures combined stdout and stderr. A non-zero exit, a
// kill by signal, and a cancelled context (user interrupt) all surface as a
// *CommandError carrying the exit code and captured output, so callers have a
// single failure shape to clean up after and report.
package toolexec
