package cmdbuilder

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Factory hands out builders pre-bound to one external binary. Binding
// validates that the path resolves to an executable reachable by the current
// process, so misconfiguration surfaces at setup time rather than at run
// time.
type Factory struct {
	binary string
}

// NewFactory creates a factory bound to the given binary. The path is
// resolved and validated like UseBinary.
func NewFactory(path string) (*Factory, error) {
	f := &Factory{}
	if err := f.UseBinary(path); err != nil {
		return nil, err
	}
	return f, nil
}

// UseBinary rebinds the factory to a new binary. Bare names are resolved via
// PATH; paths containing a separator are probed directly for an executable
// regular file.
func (f *Factory) UseBinary(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrNotExecutable)
	}

	if !strings.ContainsRune(path, os.PathSeparator) {
		resolved, err := exec.LookPath(path)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrNotExecutable, path, err)
		}
		f.binary = resolved
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrNotExecutable, path, err)
	}
	if info.IsDir() || info.Mode()&0o111 == 0 {
		return fmt.Errorf("%w: %q", ErrNotExecutable, path)
	}
	f.binary = path
	return nil
}

// Binary returns the currently bound binary path.
func (f *Factory) Binary() string {
	return f.binary
}

// Create returns a new builder with the bound binary as prefix. It fails
// with ErrNoBinary on an unbound factory.
func (f *Factory) Create() (*Builder, error) {
	if f.binary == "" {
		return nil, ErrNoBinary
	}
	return New().SetPrefix(f.binary), nil
}
