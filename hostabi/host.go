package hostabi

import (
	"sync"
	"unsafe"

	zshruntime "github.com/zshmod/zsh-runtime"
)

// Host is the complete set of shell routines the bridge calls. The live
// implementation is a cgo shim over zsh's exported functions; hosttest
// provides an in-memory implementation for tests and tooling.
type Host interface {
	zshruntime.Allocator

	// Parameter table. The generic getters and setters go through the
	// shell's name lookup; ParamNode exposes the hash node itself for the
	// cached direct-access path. Setters take ownership of any pointer
	// they are handed.
	GetSParam(name *byte) *byte
	SetSParam(name *byte, value *byte) bool
	GetIParam(name *byte) Zlong
	SetIParam(name *byte, value Zlong) bool
	GetAParam(name *byte) **byte
	SetAParam(name *byte, value **byte) bool
	UnsetParam(name *byte)
	ParamNode(name *byte) *Param
	FreeArray(arr **byte)

	// Hook table.
	HookDefByName(name *byte) *HookDef
	AddHookFunc(name *byte, fn HookFn)
	DeleteHookFunc(name *byte, fn HookFn)
	RunHookDef(def *HookDef, data unsafe.Pointer) int32
	HookNames() []string

	// Feature negotiation. FeaturesArray renders the feature set into the
	// shell's NUL-terminated array of feature name strings; HandleFeatures
	// applies an enable/disable bitmap and returns the shell's status.
	FeaturesArray(m unsafe.Pointer, f *FeatureSet) **byte
	HandleFeatures(m unsafe.Pointer, f *FeatureSet, enables **int32) int32

	// ExecString evaluates a script string as if typed at the prompt,
	// tagged with the given identifier for error reporting.
	ExecString(script *byte, tag *byte)
}

var (
	hostMu sync.Mutex
	host   Host
)

// Bind installs the host implementation every package in the bridge calls
// through. The cgo shim binds the live shell during module load; tests bind
// a hosttest.Host. Binding nil unbinds.
func Bind(h Host) {
	hostMu.Lock()
	defer hostMu.Unlock()
	host = h
}

// Active returns the bound host. It panics when no host is bound: every
// caller is responding to host activity, so an absent host is a protocol
// violation, not a recoverable condition.
func Active() Host {
	hostMu.Lock()
	defer hostMu.Unlock()
	if host == nil {
		panic("hostabi: no host bound (module loaded outside a shell?)")
	}
	return host
}

// Bound reports whether a host is currently bound.
func Bound() bool {
	hostMu.Lock()
	defer hostMu.Unlock()
	return host != nil
}
