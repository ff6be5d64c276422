// Package zalloc bridges the host shell's allocator into Go.
//
// Every value that crosses into the shell must live in memory the shell's
// allocator owns, because the shell frees what it is handed with its own
// deallocator. A Block wraps one such allocation and has exactly two
// terminal operations:
//
//   - Free returns the memory to the host allocator. Callers release
//     still-owned blocks with defer b.Free(); a second Free is a no-op.
//   - Transfer extracts the raw pointer and disarms Free, handing permanent
//     ownership to the shell. The block must not be used afterwards.
//
// Allocation failure follows host convention: the shell treats out of
// memory as unrecoverable, so New and Strdup panic instead of returning an
// error. Wrapping a nil pointer is a programmer error and also panics.
package zalloc
