// Package builtins dispatches shell builtin commands to Go handlers.
//
// The shell's builtin descriptor carries a raw function pointer, and every
// command a module exposes points at the same Trampoline. The trampoline
// converts the shell's NUL-terminated argument vector into Go strings and
// dispatches by command name through a process-wide handler table.
//
// The table is name-keyed and first-registration-wins: registering a name
// twice leaves the first handler installed. Dispatching a name with no
// handler returns exit status 1, the shell's generic failure status. The
// status alone cannot distinguish an unknown command from a command that
// ran and failed. That ambiguity is a property of the shell's builtin
// convention, not something this package can repair.
package builtins
