package zalloc

import (
	"unsafe"

	"github.com/zshmod/zsh-runtime/errors"
	"github.com/zshmod/zsh-runtime/hostabi"
)

// Block owns one allocation made with the host allocator.
type Block struct {
	ptr   unsafe.Pointer
	armed bool
}

// New allocates size bytes from the host allocator. The host treats
// allocation failure as unrecoverable, so New panics when the allocator
// returns nil.
func New(size uintptr) *Block {
	ptr := hostabi.Active().Alloc(size)
	if ptr == nil {
		panic("zalloc: host allocator out of memory")
	}
	return &Block{ptr: ptr, armed: true}
}

// Wrap takes ownership of a pointer already produced by the host allocator.
// A nil pointer is a programmer error, not a runtime condition, and panics.
func Wrap(ptr unsafe.Pointer) *Block {
	if ptr == nil {
		panic("zalloc: cannot wrap nil pointer")
	}
	return &Block{ptr: ptr, armed: true}
}

// Ptr returns the raw pointer. The pointer stays valid until Free or
// Transfer; after either it is nil.
func (b *Block) Ptr() unsafe.Pointer {
	return b.ptr
}

// Transfer extracts the raw pointer and disarms Free, handing permanent
// ownership to the host. The block must not be used again.
func (b *Block) Transfer() unsafe.Pointer {
	ptr := b.ptr
	b.ptr = nil
	b.armed = false
	return ptr
}

// Free returns the memory to the host allocator. It releases exactly once:
// repeated calls and calls after Transfer are no-ops.
func (b *Block) Free() {
	if !b.armed {
		return
	}
	b.armed = false
	ptr := b.ptr
	b.ptr = nil
	hostabi.Active().Free(ptr)
}

// String owns a NUL-terminated string duplicated into host memory.
type String struct {
	block Block
}

// Strdup duplicates text into host-owned memory via the host's own string
// duplicator. Text with an embedded NUL byte cannot be represented as a
// C string and yields an invalid_name error.
func Strdup(text string) (*String, error) {
	if hostabi.HasNUL(text) {
		return nil, errors.InvalidName(errors.PhaseAlloc, text)
	}
	buf := append([]byte(text), 0)
	ptr := hostabi.Active().Strdup(&buf[0])
	if ptr == nil {
		panic("zalloc: host allocator out of memory")
	}
	return &String{block: Block{ptr: unsafe.Pointer(ptr), armed: true}}, nil
}

// MustStrdup is Strdup for compile-time-known text that cannot contain NUL.
func MustStrdup(text string) *String {
	s, err := Strdup(text)
	if err != nil {
		panic(err)
	}
	return s
}

// Ptr returns the string pointer, valid until Free or Transfer.
func (s *String) Ptr() *byte {
	return (*byte)(s.block.Ptr())
}

// Transfer hands the string to the host and disarms Free.
func (s *String) Transfer() *byte {
	return (*byte)(s.block.Transfer())
}

// Free returns the string to the host allocator, exactly once.
func (s *String) Free() {
	s.block.Free()
}
