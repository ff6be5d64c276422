// Package hostabi declares the raw zsh module ABI surface.
//
// The types here mirror the C structs zsh hands to and reads from loadable
// modules: builtin, conddef, mathfunc and paramdef descriptors, the features
// struct that groups them, parameter hash nodes with their typed value union,
// and hook definitions. Everything above this package works with ordinary Go
// values; every raw pointer walk in the library lives here.
//
// The Host interface is the complete set of shell routines the bridge calls:
// the allocator, the parameter table, the hook table, feature negotiation and
// script execution. A live shell provides it through a cgo shim generated
// from zsh's headers alongside these declarations; tests and tooling bind the
// in-memory implementation from the hosttest package instead.
//
// Exactly one Host is bound at a time. Bind installs it and Active returns
// it, panicking when no host is bound, because calling into an absent shell
// is a programmer error rather than a runtime condition.
//
// Only the leading fields of zsh's param and hashnode structs are declared:
// the bridge reads and writes the name, flags and value union and treats the
// rest of the node as opaque host state behind the node pointer.
package hostabi
