package params

import (
	"strconv"
	"strings"
	"unsafe"

	"github.com/zshmod/zsh-runtime/errors"
	"github.com/zshmod/zsh-runtime/hostabi"
	"github.com/zshmod/zsh-runtime/zalloc"
)

// Kind is a parameter's declared value kind.
type Kind int

const (
	KindScalar Kind = iota
	KindArray
	KindInteger
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

func kindOf(p *hostabi.Param) Kind {
	switch p.Kind() {
	case hostabi.PMArray:
		return KindArray
	case hostabi.PMInteger:
		return KindInteger
	case hostabi.PMFFloat:
		return KindFloat
	default:
		return KindScalar
	}
}

// AnyHandle is a type-erased direct accessor: it inspects the node's
// declared kind on each call and dispatches to the matching typed path.
// Use it when the parameter's kind is not known ahead of time.
type AnyHandle struct {
	node
}

// Any returns a type-erased direct handle for a parameter of unknown kind.
func Any(name string) *AnyHandle {
	return &AnyHandle{node{name: name}}
}

// Kind reports the parameter's declared kind.
func (h *AnyHandle) Kind() (Kind, error) {
	p, err := h.resolve()
	if err != nil {
		return KindScalar, err
	}
	return kindOf(p), nil
}

// GetString reads the value as text regardless of kind: scalars verbatim,
// integers and floats formatted, arrays joined on single spaces.
func (h *AnyHandle) GetString() (string, error) {
	p, err := h.resolve()
	if err != nil {
		return "", err
	}
	switch kindOf(p) {
	case KindInteger:
		return strconv.FormatInt(p.U.Int(), 10), nil
	case KindFloat:
		return strconv.FormatFloat(p.U.Float(), 'g', -1, 64), nil
	case KindArray:
		arr := p.U.Arr()
		if arr == nil {
			return "", nil
		}
		return strings.Join(hostabi.ArgvStrings(arr), " "), nil
	default:
		return hostabi.GoString(p.U.Str()), nil
	}
}

// SetString stores text according to the parameter's declared kind:
// scalars verbatim, integers and floats parsed from the text, arrays split
// on whitespace. Text that does not parse for a numeric parameter yields a
// parse error.
func (h *AnyHandle) SetString(value string) error {
	p, err := h.resolve()
	if err != nil {
		return err
	}
	switch kindOf(p) {
	case KindInteger:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return errors.Parse(errors.PhaseParam, h.name, value, "integer")
		}
		p.U.SetInt(n)
		return nil
	case KindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errors.Parse(errors.PhaseParam, h.name, value, "float")
		}
		p.U.SetFloat(f)
		return nil
	case KindArray:
		arr, err := newHostArgv(strings.Fields(value))
		if err != nil {
			return err
		}
		if old := p.U.Arr(); old != nil {
			hostabi.Active().FreeArray(old)
		}
		p.U.SetArr(arr)
		return nil
	default:
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
}
