// Package params provides typed access to the shell's parameters.
//
// Two access paths exist. The package-level functions (GetScalar, SetList,
// Unset, ...) go through the shell's generic by-name routines on every call
// and suit simple, infrequent access. Direct handles (Scalar, Int, Float,
// List, Any) resolve the shell's internal parameter node once, cache the
// node pointer, and read or write the node's value union directly, skipping
// the per-call name lookup. A cached node is trusted only while its name
// field is non-nil; the shell clears it on teardown, and the next access
// re-resolves.
//
// Values handed to the shell are duplicated into host-owned memory and
// transferred: the shell frees them with its own allocator when the
// parameter is reassigned or unset.
//
// The shell's module API has no generic float getter or setter, so GetFloat
// and SetFloat always use the node path; setting a float that does not
// exist yet reports not_found.
package params
