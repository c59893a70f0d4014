package cmdqueue

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/sowinskl/go-proc/cmdbuilder"
)

// Job is the JSON wire form of a built command spec. Input payloads are
// carried as bytes, so a producer-side reader is drained once at job
// creation.
type Job struct {
	// Name labels the job for logging on the worker side.
	Name string `json:"name,omitempty"`
	// Argv is the resolved argument vector, prefix included.
	Argv []string `json:"argv"`
	// Dir is the working directory on the worker host.
	Dir string `json:"dir,omitempty"`
	// Env is the resolved environment. Nil means the worker's ambient
	// environment is inherited untouched.
	Env []string `json:"env,omitempty"`
	// Input is the standard-input payload.
	Input []byte `json:"input,omitempty"`
	// TimeoutSec bounds execution on the worker; 0 means no timeout.
	TimeoutSec float64 `json:"timeout_sec,omitempty"`
	// Options are opaque key/values carried through to the worker's
	// execution layer.
	Options map[string]any `json:"options,omitempty"`
	// InheritEnv records whether ambient environment inheritance was
	// requested when the spec was built.
	InheritEnv bool `json:"inherit_env"`
	// DisableOutput asks the worker not to capture stdout/stderr.
	DisableOutput bool `json:"disable_output,omitempty"`
}

// NewJob converts a built spec into its wire form. The spec's input reader,
// if any, is drained here; the spec should not be executed locally
// afterwards.
func NewJob(name string, spec *cmdbuilder.Spec) (*Job, error) {
	if spec == nil || len(spec.Argv) == 0 {
		return nil, ErrEmptyJob
	}

	job := &Job{
		Name:          name,
		Argv:          spec.Argv,
		Dir:           spec.Dir,
		Env:           spec.Env,
		TimeoutSec:    spec.Timeout.Seconds(),
		Options:       spec.Options,
		InheritEnv:    spec.InheritEnv,
		DisableOutput: spec.OutputDisabled,
	}

	if spec.Input != nil {
		data, err := io.ReadAll(spec.Input)
		if err != nil {
			return nil, fmt.Errorf("cmdqueue: reading spec input: %w", err)
		}
		job.Input = data
	}

	return job, nil
}

// Spec reconstitutes the command spec on the worker side.
func (j *Job) Spec() *cmdbuilder.Spec {
	spec := &cmdbuilder.Spec{
		Argv:           j.Argv,
		Line:           cmdbuilder.JoinLine(j.Argv),
		Dir:            j.Dir,
		Env:            j.Env,
		Timeout:        time.Duration(j.TimeoutSec * float64(time.Second)),
		Options:        j.Options,
		InheritEnv:     j.InheritEnv,
		OutputDisabled: j.DisableOutput,
	}

	// JSON cannot tell an empty environment from an absent one, so the
	// inherit flag decides.
	if spec.Env == nil && !j.InheritEnv {
		spec.Env = []string{}
	}

	if len(j.Input) > 0 {
		spec.Input = bytes.NewReader(j.Input)
	}

	return spec
}
