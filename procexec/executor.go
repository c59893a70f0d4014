package procexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/sowinskl/go-proc/cmdbuilder"
)

// ErrEmptySpec is returned when Run is handed a nil spec or one without an
// argument vector.
var ErrEmptySpec = errors.New("procexec: spec has no command")

// Executor runs a built command spec. The capability methods declare
// optional spec features explicitly, so callers can check support up front
// instead of probing at run time.
type Executor interface {
	Run(ctx context.Context, spec *cmdbuilder.Spec) (*Result, error)
	SupportsEnvironmentInheritance() bool
	SupportsOutputDisable() bool
}

// Runner executes specs as local subprocesses, with optional retries.
type Runner struct {
	retries    int
	retryDelay time.Duration
}

// Ensure Runner implements Executor at compile time
var _ Executor = (*Runner)(nil)

// New creates a runner with no retries.
func New() *Runner {
	return &Runner{
		retryDelay: 1 * time.Second,
	}
}

// Retry sets the number of retries and the initial delay between attempts.
// Attempts back off exponentially from the delay. A spec whose Input is a
// one-shot reader should not be retried: the reader is drained by the first
// attempt.
func (r *Runner) Retry(retries int, delay time.Duration) *Runner {
	r.retries = retries
	r.retryDelay = delay
	return r
}

// SupportsEnvironmentInheritance reports that the runner honors both the
// inherit-untouched (nil Env) and exact-environment forms of a spec.
func (r *Runner) SupportsEnvironmentInheritance() bool { return true }

// SupportsOutputDisable reports that the runner honors OutputDisabled.
func (r *Runner) SupportsOutputDisable() bool { return true }

// Run executes the spec and waits for completion. The spec's timeout bounds
// each attempt; the spec's environment, working directory, input, and
// output flags are applied as built. On a non-zero exit the Result is still
// returned alongside the error.
func (r *Runner) Run(ctx context.Context, spec *cmdbuilder.Spec) (*Result, error) {
	if spec == nil || len(spec.Argv) == 0 {
		return nil, ErrEmptySpec
	}

	var result *Result

	operation := func() error {
		var execCtx context.Context
		var cancel context.CancelFunc

		if spec.Timeout > 0 {
			execCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
		} else {
			execCtx, cancel = context.WithCancel(ctx)
		}
		defer cancel()

		cmd := exec.CommandContext(execCtx, spec.Argv[0], spec.Argv[1:]...) //nolint:gosec // running caller-built argv is the purpose of this package
		cmd.Dir = spec.Dir
		cmd.Env = spec.Env // nil inherits the ambient environment
		cmd.Stdin = spec.Input

		var stdout, stderr bytes.Buffer
		if !spec.OutputDisabled {
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
		}

		start := time.Now()
		err := cmd.Run()

		result = &Result{
			Stdout:   stdout.Bytes(),
			Stderr:   stderr.Bytes(),
			ExitCode: cmd.ProcessState.ExitCode(),
			Duration: time.Since(start),
		}

		if err != nil {
			if execCtx.Err() != nil {
				return fmt.Errorf("procexec: killed: %w", execCtx.Err())
			}
			return fmt.Errorf("procexec: exit code %d: %w", result.ExitCode, err)
		}
		return nil
	}

	if r.retries > 0 {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = r.retryDelay
		b.MaxElapsedTime = time.Duration(r.retries+1) * r.retryDelay * 2
		contextBackoff := backoff.WithContext(b, ctx)

		notify := func(err error, next time.Duration) {
			logrus.Warnf("ProcExec: %q failed, retrying in %v: %v", spec.Argv[0], next, err)
		}
		err := backoff.RetryNotify(operation, backoff.WithMaxRetries(contextBackoff, uint64(r.retries)), notify)
		if err != nil {
			return result, fmt.Errorf("procexec: command failed after %d retries: %w", r.retries, err)
		}
		return result, nil
	}

	if err := operation(); err != nil {
		return result, err
	}
	return result, nil
}
