// Package features builds the descriptor arrays a module hands to the shell.
//
// The shell enumerates and enables a module's features from four C arrays:
// builtins, condition definitions, math functions and parameter definitions.
// A Registry holds the safe, dynamically-sized definitions and materializes
// them into raw arrays on demand.
//
// Materialize regenerates the raw arrays into storage the registry itself
// retains, so the pointers in the returned FeatureSet stay valid until the
// next Materialize call; the shell may re-read them at any time between
// feature queries. Descriptor names are duplicated into host-owned memory
// once, when the definition is added, and retained for the registry's
// lifetime.
//
// Adding a builtin also installs its handler into the builtins dispatch
// table; both the table and the registry deduplicate by name, keeping the
// first registration.
//
// A Registry is built inside Module.Features and materialized under the
// module store's lock; it needs no locking of its own.
package features
