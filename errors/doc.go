// Package errors provides structured error types for the zsh-runtime library.
//
// Errors are categorized by Phase (which subsystem produced the error) and
// Kind (error category). The Error type carries the shell-visible name that
// the operation was acting on and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParam, errors.KindParse).
//		Name("COLUMNS").
//		Detail("%q is not an integer", text).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseHook, "precmd")
//	err := errors.InvalidName(errors.PhaseParam, name)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two errors match under Is when their Phase and Kind are equal, so callers
// can test for a category without caring about the exact name or detail.
package errors
