package hostabi

import (
	"reflect"
	"unsafe"
)

// Zlong is zsh's integer parameter type.
type Zlong = int64

// BuiltinFn is the handler signature zsh calls for a builtin command:
// the command name, a NUL-terminated argument vector, the parsed option
// set and the function selector for multi-name builtins.
type BuiltinFn func(name *byte, argv **byte, opts unsafe.Pointer, funcID int32) int32

// HookFn is the callback signature zsh invokes when a hook fires. The data
// pointer is whatever the firing site passed to RunHookDef.
type HookFn func(def *HookDef, data unsafe.Pointer) int32

// FnID returns the code pointer identifying a hook callback. The host hook
// table stores C function pointers and compares them by identity; this is
// the Go-side equivalent for top-level functions.
func FnID(fn HookFn) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}

// CondFn handles a module-defined condition test.
type CondFn func(args **byte, id int32) int32

// NumMathFn evaluates a math function over numeric arguments.
type NumMathFn func(name *byte, argc int32, args unsafe.Pointer, id int32) Zlong

// StrMathFn evaluates a math function over a raw string argument.
type StrMathFn func(name *byte, arg *byte, id int32) Zlong

// HashNode is the leading portion of every zsh hash table node. A nil Nam
// marks a node the shell has torn down; cached node pointers are dead once
// Nam goes nil.
type HashNode struct {
	Next  *HashNode
	Nam   *byte
	Flags int32
}

// Parameter kind bits from the node flags. Values match zsh's PM_* bits.
const (
	PMScalar  int32 = 0
	PMArray   int32 = 1 << 0
	PMInteger int32 = 1 << 1
	PMEFloat  int32 = 1 << 2
	PMFFloat  int32 = 1 << 3
)

// ParamValue is zsh's param value union: one machine word holding either a
// scalar string pointer, an array pointer vector, an integer or a float,
// selected by the node's kind flags.
type ParamValue [8]byte

// Str returns the union viewed as a scalar string pointer.
func (v *ParamValue) Str() *byte {
	return *(**byte)(unsafe.Pointer(v))
}

// SetStr stores a scalar string pointer into the union.
func (v *ParamValue) SetStr(p *byte) {
	*(**byte)(unsafe.Pointer(v)) = p
}

// Arr returns the union viewed as a NUL-terminated pointer array.
func (v *ParamValue) Arr() **byte {
	return *(***byte)(unsafe.Pointer(v))
}

// SetArr stores an array pointer into the union.
func (v *ParamValue) SetArr(p **byte) {
	*(***byte)(unsafe.Pointer(v)) = p
}

// Int returns the union viewed as an integer value.
func (v *ParamValue) Int() Zlong {
	return *(*Zlong)(unsafe.Pointer(v))
}

// SetInt stores an integer value into the union.
func (v *ParamValue) SetInt(n Zlong) {
	*(*Zlong)(unsafe.Pointer(v)) = n
}

// Float returns the union viewed as a float value.
func (v *ParamValue) Float() float64 {
	return *(*float64)(unsafe.Pointer(v))
}

// SetFloat stores a float value into the union.
func (v *ParamValue) SetFloat(f float64) {
	*(*float64)(unsafe.Pointer(v)) = f
}

// Param is the leading portion of a zsh parameter hash node: the generic
// hash node header, the value union and the get/set/unset function table.
// Remaining zsh fields are host state the bridge never touches.
type Param struct {
	Node HashNode
	U    ParamValue
	GSU  unsafe.Pointer
}

// Kind reduces the node's flag bits to one of the PM* kind constants.
func (p *Param) Kind() int32 {
	flags := p.Node.Flags
	switch {
	case flags&PMArray != 0:
		return PMArray
	case flags&PMInteger != 0:
		return PMInteger
	case flags&(PMEFloat|PMFFloat) != 0:
		return PMFFloat
	default:
		return PMScalar
	}
}

// Live reports whether a cached node pointer is still valid: the shell
// clears the name field when it tears the node down.
func (p *Param) Live() bool {
	return p != nil && p.Node.Nam != nil
}

// Builtin mirrors zsh's builtin descriptor. Fields not present here are
// host-default zero in the materialized array.
type Builtin struct {
	Node        HashNode
	HandlerFunc BuiltinFn
	MinArgs     int32
	MaxArgs     int32
	Optstr      *byte
}

// CondDef mirrors zsh's condition definition descriptor.
type CondDef struct {
	Name    *byte
	Flags   int32
	Handler CondFn
	Min     int32
	Max     int32
	Module  *byte
}

// MathFunc mirrors zsh's math function descriptor.
type MathFunc struct {
	Name    *byte
	Flags   int32
	NumFunc NumMathFn
	StrFunc StrMathFn
	MinArgs int32
	MaxArgs int32
}

// ParamDef mirrors zsh's parameter definition descriptor. Var points at
// module-owned backing storage; GSU is the get/set/unset function table.
type ParamDef struct {
	Name  *byte
	Flags int32
	Var   unsafe.Pointer
	GSU   unsafe.Pointer
}

// FeatureSet mirrors zsh's features struct: one (list, size) pair per
// descriptor kind plus the count of abstract features.
type FeatureSet struct {
	BnList    *Builtin
	BnSize    int32
	CdList    *CondDef
	CdSize    int32
	MfList    *MathFunc
	MfSize    int32
	PdList    *ParamDef
	PdSize    int32
	NAbstract int32
}

// HookFnNode is one entry in a hook's registered-callback list.
type HookFnNode struct {
	Next *HookFnNode
	Fn   HookFn
}

// HookFnList is the linked list of callbacks registered on a hook.
type HookFnList struct {
	First *HookFnNode
}

// HookDef mirrors zsh's hook definition record.
type HookDef struct {
	Name  *byte
	Flags int32
	Funcs *HookFnList
}
