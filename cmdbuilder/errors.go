package cmdbuilder

import "errors"

var (
	// ErrNoCommand is returned by Build when neither a prefix nor any
	// arguments have been configured.
	ErrNoCommand = errors.New("cmdbuilder: no command configured")

	// ErrNegativeTimeout is returned by SetTimeout for negative durations.
	ErrNegativeTimeout = errors.New("cmdbuilder: timeout must not be negative")

	// ErrInvalidInput is returned by SetInput for values with no defined
	// byte representation.
	ErrInvalidInput = errors.New("cmdbuilder: input must be a string, finite number, byte slice, or reader")

	// ErrNoBinary is returned by Factory.Create when no binary is bound.
	ErrNoBinary = errors.New("cmdbuilder: no binary configured")

	// ErrNotExecutable is returned by UseBinary when the path does not
	// resolve to an executable file.
	ErrNotExecutable = errors.New("cmdbuilder: binary is not an executable file")
)
