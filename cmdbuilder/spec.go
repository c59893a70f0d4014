package cmdbuilder

import (
	"io"
	"time"
)

// Spec is an immutable snapshot of full process configuration, ready to hand
// to an execution layer. Builders produce one per Build call; treat the
// fields as read-only once built.
type Spec struct {
	// Argv is the resolved argument vector: prefix entries followed by
	// arguments, each element one logical parameter. This is the
	// authoritative form; executing it directly avoids re-tokenization.
	Argv []string
	// Line is the escaped command line: every Argv element quoted so that
	// shell tokenization reproduces the vector exactly. Intended for
	// logging and for handing to a remote shell.
	Line string
	// Dir is the working directory. Empty means inherit the caller's.
	Dir string
	// Env is the resolved environment as KEY=VALUE pairs. Nil means
	// inherit the ambient environment untouched; a non-nil slice (possibly
	// empty) is the exact environment for the process.
	Env []string
	// Input is the standard-input payload. May be nil.
	Input io.Reader
	// Timeout bounds execution; zero means no timeout. Enforcement belongs
	// to the execution layer.
	Timeout time.Duration
	// Options are opaque key/values for the execution layer.
	Options map[string]any
	// InheritEnv records whether ambient environment inheritance was
	// requested, for execution layers that resolve environments themselves.
	InheritEnv bool
	// OutputDisabled asks the execution layer not to capture stdout/stderr.
	OutputDisabled bool
}
