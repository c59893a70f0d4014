// Package cmdbuilder assembles safe, shell-correct command invocations.
//
// A Builder accumulates a fixed prefix (binary plus mandatory flags),
// free-form arguments, environment overrides, a working directory, an input
// payload, a timeout, and opaque execution options, then projects them into
// an immutable Spec that an execution layer can run. The builder never
// spawns processes itself.
//
// Basic usage:
//
//	spec, err := cmdbuilder.New("hello world").
//		SetPrefix("/bin/echo").
//		Build()
//
// Every argument becomes exactly one shell token: Spec.Argv holds the raw
// vector, Spec.Line the escaped command line, so injected whitespace or
// metacharacters in an argument can never change argument boundaries.
//
// A Factory hands out builders pre-bound to one external binary:
//
//	f, err := cmdbuilder.NewFactory("tar")
//	b, err := f.Create()
//	spec, err := b.SetArguments([]string{"-czf", archive, dir}).Build()
package cmdbuilder
