package cmdbuilder

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// envEntry is one environment override. A nil value marks the variable as
// removed: it is excluded from the resolved environment even when the
// ambient environment is inherited.
type envEntry struct {
	name  string
	value *string
}

// Builder accumulates process configuration and projects it into a Spec.
// It is a plain mutable accumulator owned by a single caller; it is not safe
// for concurrent use. Build is non-destructive, so a builder may be reused
// after building.
type Builder struct {
	prefix         []string
	args           []string
	env            []envEntry
	dir            string
	input          io.Reader
	timeout        time.Duration
	options        map[string]any
	inheritEnv     bool
	outputDisabled bool
}

// New creates a builder seeded with the given arguments.
func New(args ...string) *Builder {
	return &Builder{
		args:       append([]string(nil), args...),
		inheritEnv: true,
	}
}

// AddArgument appends one unescaped argument.
func (b *Builder) AddArgument(arg string) *Builder {
	b.args = append(b.args, arg)
	return b
}

// SetPrefix replaces the fixed leading arguments (typically the binary path
// plus mandatory flags). The prefix is prepended to the arguments at build
// time and is not touched by SetArguments.
func (b *Builder) SetPrefix(prefix ...string) *Builder {
	b.prefix = append([]string(nil), prefix...)
	return b
}

// SetArguments replaces the arguments wholesale, leaving the prefix intact.
func (b *Builder) SetArguments(args []string) *Builder {
	b.args = append([]string(nil), args...)
	return b
}

// SetWorkingDirectory sets the working directory for the process. An empty
// string clears it, so the process inherits the caller's directory.
func (b *Builder) SetWorkingDirectory(dir string) *Builder {
	b.dir = dir
	return b
}

// InheritEnvironmentVariables controls whether the ambient process
// environment is carried into the spec. The default is true.
func (b *Builder) InheritEnvironmentVariables(inherit bool) *Builder {
	b.inheritEnv = inherit
	return b
}

// SetEnv sets one environment variable override. Later calls for the same
// name win.
func (b *Builder) SetEnv(name, value string) *Builder {
	v := value
	return b.putEnv(name, &v)
}

// UnsetEnv marks an environment variable as removed: it will be excluded
// from the resolved environment even if it exists in the ambient environment
// and inheritance is enabled.
func (b *Builder) UnsetEnv(name string) *Builder {
	return b.putEnv(name, nil)
}

// AddEnv merges a set of environment overrides, last write wins per key.
func (b *Builder) AddEnv(vars map[string]string) *Builder {
	for name, value := range vars {
		v := value
		b.putEnv(name, &v)
	}
	return b
}

func (b *Builder) putEnv(name string, value *string) *Builder {
	for i := range b.env {
		if b.env[i].name == name {
			b.env[i].value = value
			return b
		}
	}
	b.env = append(b.env, envEntry{name: name, value: value})
	return b
}

// SetInput sets the payload fed to the process's standard input. Accepted
// values: nil (clears the input), string, []byte, any finite integer or
// float (rendered in decimal), or an io.Reader. Anything else fails with
// ErrInvalidInput.
func (b *Builder) SetInput(v any) error {
	switch in := v.(type) {
	case nil:
		b.input = nil
	case io.Reader:
		b.input = in
	case string:
		b.input = strings.NewReader(in)
	case []byte:
		b.input = bytes.NewReader(in)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		b.input = strings.NewReader(fmt.Sprintf("%d", in))
	case float32:
		return b.setFloatInput(float64(in))
	case float64:
		return b.setFloatInput(in)
	default:
		return fmt.Errorf("%w: got %T", ErrInvalidInput, v)
	}
	return nil
}

func (b *Builder) setFloatInput(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: got non-finite float %v", ErrInvalidInput, f)
	}
	b.input = strings.NewReader(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}

// SetTimeout sets the execution timeout handed to the execution layer. Zero
// disables the timeout; negative durations fail with ErrNegativeTimeout.
// The builder does not enforce the timeout itself.
func (b *Builder) SetTimeout(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeTimeout, d)
	}
	b.timeout = d
	return nil
}

// SetOption records an opaque key/value passed through to the execution
// layer untouched (e.g. platform-specific spawn flags).
func (b *Builder) SetOption(name string, value any) *Builder {
	if b.options == nil {
		b.options = make(map[string]any)
	}
	b.options[name] = value
	return b
}

// DisableOutput tells the execution layer not to capture stdout/stderr,
// which matters for long-running or high-volume commands.
func (b *Builder) DisableOutput() *Builder {
	b.outputDisabled = true
	return b
}

// EnableOutput re-enables stdout/stderr capture.
func (b *Builder) EnableOutput() *Builder {
	b.outputDisabled = false
	return b
}

// Build projects the accumulated configuration into an immutable Spec. It
// fails with ErrNoCommand when both prefix and arguments are empty. Build is
// idempotent: repeated calls on an unchanged builder produce equal specs.
func (b *Builder) Build() (*Spec, error) {
	argv := make([]string, 0, len(b.prefix)+len(b.args))
	argv = append(argv, b.prefix...)
	argv = append(argv, b.args...)
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}

	var options map[string]any
	if len(b.options) > 0 {
		options = make(map[string]any, len(b.options))
		for k, v := range b.options {
			options[k] = v
		}
	}

	return &Spec{
		Argv:           argv,
		Line:           JoinLine(argv),
		Dir:            b.dir,
		Env:            b.resolveEnv(),
		Input:          b.input,
		Timeout:        b.timeout,
		Options:        options,
		InheritEnv:     b.inheritEnv,
		OutputDisabled: b.outputDisabled,
	}, nil
}

// resolveEnv computes the effective KEY=VALUE list: the ambient environment
// (when inherited) minus overridden and removed keys, then the overrides in
// first-set order. A nil result means "inherit untouched"; a non-nil result
// is the exact environment for the process.
func (b *Builder) resolveEnv() []string {
	if len(b.env) == 0 {
		if b.inheritEnv {
			return nil
		}
		return []string{}
	}

	touched := make(map[string]bool, len(b.env))
	for _, e := range b.env {
		touched[e.name] = true
	}

	var env []string
	if b.inheritEnv {
		for _, kv := range os.Environ() {
			name, _, _ := strings.Cut(kv, "=")
			if !touched[name] {
				env = append(env, kv)
			}
		}
	}
	for _, e := range b.env {
		if e.value != nil {
			env = append(env, e.name+"="+*e.value)
		}
	}
	if env == nil {
		env = []string{}
	}
	return env
}
