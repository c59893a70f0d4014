package procexec

import "time"

// Result captures the outcome of one process execution.
type Result struct {
	// Stdout is the captured standard output. Empty when output capture
	// was disabled on the spec.
	Stdout []byte
	// Stderr is the captured standard error. Empty when output capture
	// was disabled on the spec.
	Stderr []byte
	// ExitCode is the process exit code, or -1 if the process did not run
	// or was terminated by a signal.
	ExitCode int
	// Duration is the wall-clock execution time of the final attempt.
	Duration time.Duration
}
