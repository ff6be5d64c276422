package hosttest

import (
	"sort"
	"sync"
	"unsafe"

	"github.com/zshmod/zsh-runtime/hostabi"
)

// Host is an in-memory hostabi.Host. The zero value is not usable; call New.
type Host struct {
	mu sync.Mutex

	allocs map[unsafe.Pointer][]byte
	params map[string]*hostabi.Param
	hooks  map[string]*hostabi.HookDef

	allocCount int
	freeCount  int
	badFrees   int
	lookups    map[string]int
	executed   []string

	// FailNextAlloc makes the next Alloc return nil, simulating the host
	// allocator reporting out of memory.
	FailNextAlloc bool

	// FeatureStatus is returned by HandleFeatures.
	FeatureStatus int32

	// EnablesRequests counts HandleFeatures calls.
	EnablesRequests int
}

// New creates an empty in-memory host.
func New() *Host {
	return &Host{
		allocs:  make(map[unsafe.Pointer][]byte),
		params:  make(map[string]*hostabi.Param),
		hooks:   make(map[string]*hostabi.HookDef),
		lookups: make(map[string]int),
	}
}

// --- allocator ---

func (h *Host) Alloc(size uintptr) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allocLocked(size)
}

func (h *Host) allocLocked(size uintptr) unsafe.Pointer {
	if h.FailNextAlloc {
		h.FailNextAlloc = false
		return nil
	}
	if size == 0 {
		size = 1
	}
	buf := make([]byte, size)
	p := unsafe.Pointer(&buf[0])
	h.allocs[p] = buf
	h.allocCount++
	return p
}

func (h *Host) cstringLocked(s string) *byte {
	p := h.allocLocked(uintptr(len(s) + 1))
	if p == nil {
		return nil
	}
	dst := unsafe.Slice((*byte)(p), len(s)+1)
	copy(dst, s)
	dst[len(s)] = 0
	return (*byte)(p)
}

func (h *Host) Free(ptr unsafe.Pointer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ptr == nil {
		return
	}
	if _, ok := h.allocs[ptr]; !ok {
		h.badFrees++
		return
	}
	delete(h.allocs, ptr)
	h.freeCount++
}

func (h *Host) Strdup(s *byte) *byte {
	if s == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cstringLocked(hostabi.GoString(s))
}

// CString duplicates a Go string into host-owned memory. Test helper.
func (h *Host) CString(s string) *byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cstringLocked(s)
}

// AllocCount returns the number of Alloc and Strdup calls that succeeded.
func (h *Host) AllocCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allocCount
}

// FreeCount returns the number of valid Free calls.
func (h *Host) FreeCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.freeCount
}

// BadFrees returns the number of Free calls on pointers the host never
// handed out, or handed out and already reclaimed.
func (h *Host) BadFrees() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.badFrees
}

// Outstanding returns the number of live allocations.
func (h *Host) Outstanding() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.allocs)
}

// --- parameter table ---

func (h *Host) node(name string) *hostabi.Param {
	return h.params[name]
}

func (h *Host) ensureNode(name string, kind int32) *hostabi.Param {
	if n, ok := h.params[name]; ok {
		return n
	}
	n := &hostabi.Param{}
	n.Node.Flags = kind
	n.Node.Nam = h.cstringLocked(name)
	h.params[name] = n
	return n
}

func (h *Host) GetSParam(name *byte) *byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := h.node(hostabi.GoString(name))
	if n == nil || n.Kind() != hostabi.PMScalar {
		return nil
	}
	return n.U.Str()
}

func (h *Host) SetSParam(name *byte, value *byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := h.ensureNode(hostabi.GoString(name), hostabi.PMScalar)
	if old := n.U.Str(); old != nil {
		h.freeLocked(unsafe.Pointer(old))
	}
	n.U.SetStr(value)
	return true
}

func (h *Host) GetIParam(name *byte) hostabi.Zlong {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := h.node(hostabi.GoString(name))
	if n == nil || n.Kind() != hostabi.PMInteger {
		return 0
	}
	return n.U.Int()
}

func (h *Host) SetIParam(name *byte, value hostabi.Zlong) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := h.ensureNode(hostabi.GoString(name), hostabi.PMInteger)
	n.Node.Flags = hostabi.PMInteger
	n.U.SetInt(value)
	return true
}

// SetFParam stores a float parameter. zsh reaches floats through the math
// layer rather than a dedicated getter, so the fake host exposes this
// directly for seeding test state.
func (h *Host) SetFParam(name string, value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := h.ensureNode(name, hostabi.PMFFloat)
	n.Node.Flags = hostabi.PMFFloat
	n.U.SetFloat(value)
}

func (h *Host) GetAParam(name *byte) **byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := h.node(hostabi.GoString(name))
	if n == nil || n.Kind() != hostabi.PMArray {
		return nil
	}
	return n.U.Arr()
}

func (h *Host) SetAParam(name *byte, value **byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := h.ensureNode(hostabi.GoString(name), hostabi.PMArray)
	n.Node.Flags = hostabi.PMArray
	if old := n.U.Arr(); old != nil {
		h.freeArrayLocked(old)
	}
	n.U.SetArr(value)
	return true
}

func (h *Host) UnsetParam(name *byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := hostabi.GoString(name)
	n := h.node(key)
	if n == nil {
		return
	}
	switch n.Kind() {
	case hostabi.PMScalar:
		if s := n.U.Str(); s != nil {
			h.freeLocked(unsafe.Pointer(s))
		}
	case hostabi.PMArray:
		if a := n.U.Arr(); a != nil {
			h.freeArrayLocked(a)
		}
	}
	if n.Node.Nam != nil {
		h.freeLocked(unsafe.Pointer(n.Node.Nam))
	}
	// Cached direct handles detect teardown through the cleared name.
	n.Node.Nam = nil
	delete(h.params, key)
}

func (h *Host) ParamNode(name *byte) *hostabi.Param {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := hostabi.GoString(name)
	h.lookups[key]++
	return h.node(key)
}

func (h *Host) FreeArray(arr **byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.freeArrayLocked(arr)
}

func (h *Host) freeLocked(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	if _, ok := h.allocs[ptr]; !ok {
		h.badFrees++
		return
	}
	delete(h.allocs, ptr)
	h.freeCount++
}

func (h *Host) freeArrayLocked(arr **byte) {
	if arr == nil {
		return
	}
	for i := 0; ; i++ {
		e := hostabi.ArgvAt(arr, i)
		if e == nil {
			break
		}
		h.freeLocked(unsafe.Pointer(e))
	}
	h.freeLocked(unsafe.Pointer(arr))
}

// Lookups returns how many times ParamNode resolved the given name.
func (h *Host) Lookups(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lookups[name]
}

// SeedScalar installs a scalar parameter directly, bypassing the setter
// path, for test setup.
func (h *Host) SeedScalar(name, value string) {
	v := h.CString(value)
	h.mu.Lock()
	defer h.mu.Unlock()
	n := h.ensureNode(name, hostabi.PMScalar)
	if old := n.U.Str(); old != nil {
		h.freeLocked(unsafe.Pointer(old))
	}
	n.U.SetStr(v)
}

// --- hook table ---

// DefineHook registers a hook definition, as zsh does for its own events
// and for hooks modules add. Returns the definition.
func (h *Host) DefineHook(name string) *hostabi.HookDef {
	h.mu.Lock()
	defer h.mu.Unlock()
	if def, ok := h.hooks[name]; ok {
		return def
	}
	def := &hostabi.HookDef{Name: h.cstringLocked(name), Funcs: &hostabi.HookFnList{}}
	h.hooks[name] = def
	return def
}

func (h *Host) HookDefByName(name *byte) *hostabi.HookDef {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hooks[hostabi.GoString(name)]
}

func (h *Host) AddHookFunc(name *byte, fn hostabi.HookFn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	def, ok := h.hooks[hostabi.GoString(name)]
	if !ok {
		return
	}
	node := &hostabi.HookFnNode{Fn: fn}
	if def.Funcs.First == nil {
		def.Funcs.First = node
		return
	}
	last := def.Funcs.First
	for last.Next != nil {
		last = last.Next
	}
	last.Next = node
}

func (h *Host) DeleteHookFunc(name *byte, fn hostabi.HookFn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	def, ok := h.hooks[hostabi.GoString(name)]
	if !ok || def.Funcs == nil {
		return
	}
	id := hostabi.FnID(fn)
	var prev *hostabi.HookFnNode
	for node := def.Funcs.First; node != nil; node = node.Next {
		if hostabi.FnID(node.Fn) == id {
			if prev == nil {
				def.Funcs.First = node.Next
			} else {
				prev.Next = node.Next
			}
			return
		}
		prev = node
	}
}

func (h *Host) RunHookDef(def *hostabi.HookDef, data unsafe.Pointer) int32 {
	if def == nil || def.Funcs == nil {
		return 0
	}
	h.mu.Lock()
	var fns []hostabi.HookFn
	for node := def.Funcs.First; node != nil; node = node.Next {
		fns = append(fns, node.Fn)
	}
	h.mu.Unlock()

	var status int32
	for _, fn := range fns {
		status = fn(def, data)
	}
	return status
}

func (h *Host) HookNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.hooks))
	for name := range h.hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- feature negotiation ---

func (h *Host) FeaturesArray(m unsafe.Pointer, f *hostabi.FeatureSet) **byte {
	if f == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(f.BnSize); i++ {
		b := (*hostabi.Builtin)(unsafe.Add(unsafe.Pointer(f.BnList), uintptr(i)*unsafe.Sizeof(hostabi.Builtin{})))
		names = append(names, "b:"+hostabi.GoString(b.Node.Nam))
	}
	for i := 0; i < int(f.CdSize); i++ {
		c := (*hostabi.CondDef)(unsafe.Add(unsafe.Pointer(f.CdList), uintptr(i)*unsafe.Sizeof(hostabi.CondDef{})))
		names = append(names, "c:"+hostabi.GoString(c.Name))
	}
	for i := 0; i < int(f.MfSize); i++ {
		mf := (*hostabi.MathFunc)(unsafe.Add(unsafe.Pointer(f.MfList), uintptr(i)*unsafe.Sizeof(hostabi.MathFunc{})))
		names = append(names, "f:"+hostabi.GoString(mf.Name))
	}
	for i := 0; i < int(f.PdSize); i++ {
		p := (*hostabi.ParamDef)(unsafe.Add(unsafe.Pointer(f.PdList), uintptr(i)*unsafe.Sizeof(hostabi.ParamDef{})))
		names = append(names, "p:"+hostabi.GoString(p.Name))
	}

	vec := h.Alloc(uintptr(len(names)+1) * unsafe.Sizeof(uintptr(0)))
	if vec == nil {
		return nil
	}
	arr := (**byte)(vec)
	for i, name := range names {
		hostabi.SetArgvAt(arr, i, h.CString(name))
	}
	hostabi.SetArgvAt(arr, len(names), nil)
	return arr
}

func (h *Host) HandleFeatures(m unsafe.Pointer, f *hostabi.FeatureSet, enables **int32) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.EnablesRequests++
	return h.FeatureStatus
}

// --- execution ---

func (h *Host) ExecString(script *byte, tag *byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.executed = append(h.executed, hostabi.GoString(script))
}

// Executed returns the scripts run through ExecString, oldest first.
func (h *Host) Executed() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.executed))
	copy(out, h.executed)
	return out
}
