package params

import (
	"unsafe"

	"github.com/zshmod/zsh-runtime/errors"
	"github.com/zshmod/zsh-runtime/hostabi"
	"github.com/zshmod/zsh-runtime/zalloc"
)

// node lazily resolves and caches a shell parameter node. The cache is
// trusted only while the node's name field is non-nil; the shell clears it
// when the parameter is removed or redefined, and the next access resolves
// again.
type node struct {
	name   string
	cached *hostabi.Param
}

func (n *node) resolve() (*hostabi.Param, error) {
	if n.cached.Live() {
		return n.cached, nil
	}
	n.cached = nil
	c, err := cname(n.name)
	if err != nil {
		return nil, err
	}
	p := hostabi.Active().ParamNode(c)
	if p == nil {
		return nil, errors.NotFound(errors.PhaseParam, n.name)
	}
	n.cached = p
	return p, nil
}

// ScalarHandle is a direct accessor for a scalar parameter.
type ScalarHandle struct {
	node
}

// Scalar returns a direct handle for a scalar parameter. Resolution is
// deferred to the first access.
func Scalar(name string) *ScalarHandle {
	return &ScalarHandle{node{name: name}}
}

// Get reads the scalar value straight from the node. A node holding a nil
// string reads as empty.
func (h *ScalarHandle) Get() (string, error) {
	p, err := h.resolve()
	if err != nil {
		return "", err
	}
	return hostabi.GoString(p.U.Str()), nil
}

// Set replaces the scalar value in place: the previous string goes back to
// the host allocator and a host-duplicated copy of value takes its place.
func (h *ScalarHandle) Set(value string) error {
	p, err := h.resolve()
	if err != nil {
		return err
	}
	zs, err := zalloc.Strdup(value)
	if err != nil {
		return err
	}
	if old := p.U.Str(); old != nil {
		hostabi.Active().Free(unsafe.Pointer(old))
	}
	p.U.SetStr(zs.Transfer())
	return nil
}

// IntHandle is a direct accessor for an integer parameter.
type IntHandle struct {
	node
}

// Int returns a direct handle for an integer parameter.
func Int(name string) *IntHandle {
	return &IntHandle{node{name: name}}
}

// Get reads the integer value from the node's union field.
func (h *IntHandle) Get() (hostabi.Zlong, error) {
	p, err := h.resolve()
	if err != nil {
		return 0, err
	}
	return p.U.Int(), nil
}

// Set writes the integer value into the node's union field.
func (h *IntHandle) Set(value hostabi.Zlong) error {
	p, err := h.resolve()
	if err != nil {
		return err
	}
	p.U.SetInt(value)
	return nil
}

// FloatHandle is a direct accessor for a float parameter.
type FloatHandle struct {
	node
}

// Float returns a direct handle for a float parameter.
func Float(name string) *FloatHandle {
	return &FloatHandle{node{name: name}}
}

// Get reads the float value from the node's union field.
func (h *FloatHandle) Get() (float64, error) {
	p, err := h.resolve()
	if err != nil {
		return 0, err
	}
	return p.U.Float(), nil
}

// Set writes the float value into the node's union field.
func (h *FloatHandle) Set(value float64) error {
	p, err := h.resolve()
	if err != nil {
		return err
	}
	p.U.SetFloat(value)
	return nil
}

// ListHandle is a direct accessor for an array parameter.
type ListHandle struct {
	node
}

// List returns a direct handle for an array parameter.
func List(name string) *ListHandle {
	return &ListHandle{node{name: name}}
}

// Get reads the NUL-terminated element array from the node. A nil array
// reads as empty.
func (h *ListHandle) Get() ([]string, error) {
	p, err := h.resolve()
	if err != nil {
		return nil, err
	}
	arr := p.U.Arr()
	if arr == nil {
		return nil, nil
	}
	return hostabi.ArgvStrings(arr), nil
}

// Set installs a freshly host-allocated, NUL-terminated element array,
// returning the replaced array to the host allocator first.
func (h *ListHandle) Set(values []string) error {
	p, err := h.resolve()
	if err != nil {
		return err
	}
	arr, err := newHostArgv(values)
	if err != nil {
		return err
	}
	if old := p.U.Arr(); old != nil {
		hostabi.Active().FreeArray(old)
	}
	p.U.SetArr(arr)
	return nil
}
