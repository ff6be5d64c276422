package hooks

import (
	"unsafe"

	"github.com/zshmod/zsh-runtime/hostabi"
)

// Context wraps the two pointers the shell hands a firing hook callback:
// the hook definition and the opaque data pointer from the firing site.
type Context struct {
	def  *hostabi.HookDef
	data unsafe.Pointer
}

// NewContext builds a context from the raw callback arguments.
func NewContext(def *hostabi.HookDef, data unsafe.Pointer) Context {
	return Context{def: def, data: data}
}

// Name returns the firing hook's name, or "" for a nil definition.
func (c Context) Name() string {
	if c.def == nil {
		return ""
	}
	return hostabi.GoString(c.def.Name)
}

// Data returns the opaque data pointer as passed to RunWithData.
func (c Context) Data() unsafe.Pointer {
	return c.data
}

// DataAs views the context's data pointer as a *T. The caller must match
// the type the firing site used; nothing checks it. Returns nil when the
// hook fired without data.
func DataAs[T any](c Context) *T {
	if c.data == nil {
		return nil
	}
	return (*T)(c.data)
}
