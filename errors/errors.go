package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which subsystem produced the error
type Phase string

const (
	PhaseAlloc     Phase = "alloc"     // host allocator bridging
	PhaseParam     Phase = "param"     // shell parameter access
	PhaseFeature   Phase = "feature"   // feature descriptor handling
	PhaseHook      Phase = "hook"      // hook registration and execution
	PhaseLifecycle Phase = "lifecycle" // module entry points
	PhaseDispatch  Phase = "dispatch"  // builtin command dispatch
	PhaseShell     Phase = "shell"     // script evaluation
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindAlreadyExists  Kind = "already_exists"
	KindInvalidName    Kind = "invalid_name"
	KindParse          Kind = "parse"
	KindNilPointer     Kind = "nil_pointer"
	KindNotInitialized Kind = "not_initialized"
	KindRegistration   Kind = "registration"
	KindHost           Kind = "host" // the host routine itself reported failure
)

// Error is the structured error type used throughout the library
type Error struct {
	Phase  Phase
	Kind   Kind
	Name   string // shell-visible name the operation acted on, if any
	Detail string
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf("%q", e.Name))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Name sets the shell-visible name the operation acted on
func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotFound creates a lookup failure for a shell-visible name
func NotFound(phase Phase, name string) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindNotFound,
		Name:  name,
	}
}

// AlreadyExists reports a duplicate registration under name
func AlreadyExists(phase Phase, name string) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindAlreadyExists,
		Name:  name,
	}
}

// InvalidName reports a name the host's string representation cannot carry,
// typically because it contains an embedded NUL byte
func InvalidName(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidName,
		Name:   name,
		Detail: "name contains an embedded NUL byte",
	}
}

// Parse reports text that could not be converted to the parameter's type
func Parse(phase Phase, name, text, wantType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindParse,
		Name:   name,
		Detail: fmt.Sprintf("%q is not a valid %s", text, wantType),
	}
}

// HostFailure reports a host routine returning a failure status
func HostFailure(phase Phase, name, routine string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindHost,
		Name:   name,
		Detail: fmt.Sprintf("host routine %s reported failure", routine),
	}
}

// NotInitialized reports use of a subsystem before its setup ran
func NotInitialized(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: what,
	}
}
