package zshruntime

import "unsafe"

// Allocator allocates memory from the host shell's heap.
//
// Allocation failure is unrecoverable by host convention: implementations
// return nil only when the host allocator itself reports out of memory, and
// callers treat that as fatal.
type Allocator interface {
	// Alloc requests size bytes from the host allocator.
	Alloc(size uintptr) unsafe.Pointer

	// Free returns memory previously obtained from Alloc or Strdup.
	Free(ptr unsafe.Pointer)

	// Strdup duplicates a NUL-terminated string into host-owned memory.
	Strdup(s *byte) *byte
}
