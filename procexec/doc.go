// Package procexec executes command specs built with cmdbuilder.
//
// A Runner consumes a *cmdbuilder.Spec and owns everything the builder does
// not: spawning the process, wiring stdin and the working directory,
// applying the environment, enforcing the timeout, capturing or discarding
// output, and reporting the exit code.
//
// Basic usage:
//
//	spec, err := cmdbuilder.New("-la").SetPrefix("/bin/ls").Build()
//	result, err := procexec.New().Run(ctx, spec)
//	fmt.Print(string(result.Stdout))
//
// Flaky commands can be retried with exponential backoff:
//
//	result, err := procexec.New().
//		Retry(3, 2*time.Second).
//		Run(ctx, spec)
package procexec
