package builtins

import (
	"sync"
	"unsafe"

	"github.com/zshmod/zsh-runtime/hostabi"
)

// Handler runs a builtin command. It receives the name the command was
// invoked under and its arguments, and returns the exit status.
type Handler func(name string, args []string) int32

var (
	mu       sync.Mutex
	handlers = make(map[string]Handler)
)

// Register installs a handler under name. The first registration wins;
// registering an existing name again has no effect.
func Register(name string, h Handler) {
	if h == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := handlers[name]; ok {
		return
	}
	handlers[name] = h
}

// Registered reports whether a handler is installed under name.
func Registered(name string) bool {
	mu.Lock()
	defer mu.Unlock()
	_, ok := handlers[name]
	return ok
}

// Dispatch invokes the handler registered under name. An unknown name
// returns 1, the shell's generic failure status.
func Dispatch(name string, args []string) int32 {
	mu.Lock()
	h, ok := handlers[name]
	mu.Unlock()
	if !ok {
		return 1
	}
	return h(name, args)
}

// Trampoline is the one handler function the shell actually calls. Every
// builtin descriptor a module exposes points here; it converts the raw
// argument vector into Go strings and dispatches by command name.
func Trampoline(name *byte, argv **byte, opts unsafe.Pointer, funcID int32) int32 {
	return Dispatch(hostabi.GoString(name), hostabi.ArgvStrings(argv))
}

// reset clears the handler table. Tests only: the table is process-wide.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	handlers = make(map[string]Handler)
}
