package features

import (
	"unsafe"

	"github.com/zshmod/zsh-runtime/builtins"
	"github.com/zshmod/zsh-runtime/hostabi"
	"github.com/zshmod/zsh-runtime/zalloc"
)

// BuiltinSpec fully specifies one builtin command descriptor. Zero MaxArgs
// means exactly zero arguments; use NoMaxArgs for an unlimited command.
// Fields of the shell's descriptor not represented here are host-default
// zero values.
type BuiltinSpec struct {
	Name    string
	Handler builtins.Handler
	MinArgs int32
	MaxArgs int32
	Options string // accepted option letters, empty for none
}

// NoMaxArgs marks a builtin without an upper argument limit.
const NoMaxArgs int32 = -1

// CondSpec fully specifies one condition-test descriptor.
type CondSpec struct {
	Name    string
	Flags   int32
	Handler hostabi.CondFn
	Min     int32
	Max     int32
	Module  string // owning module name, empty for none
}

// MathFuncSpec fully specifies one math-function descriptor. A function
// provides a numeric handler, a string handler, or both.
type MathFuncSpec struct {
	Name       string
	Flags      int32
	NumHandler hostabi.NumMathFn
	StrHandler hostabi.StrMathFn
	MinArgs    int32
	MaxArgs    int32
}

// ParamSpec fully specifies one parameter-definition descriptor. Var points
// at module-owned backing storage; GSU is the get/set/unset function table
// the shell consults for the parameter.
type ParamSpec struct {
	Name  string
	Flags int32
	Var   unsafe.Pointer
	GSU   unsafe.Pointer
}

type builtinDef struct {
	spec BuiltinSpec
	name *zalloc.String
	opts *zalloc.String
}

type condDef struct {
	spec   CondSpec
	name   *zalloc.String
	module *zalloc.String
}

type mathDef struct {
	spec MathFuncSpec
	name *zalloc.String
}

type paramDef struct {
	spec ParamSpec
	name *zalloc.String
}

// Registry holds a module's feature definitions plus the raw arrays the
// shell reads. Methods return the registry for builder-style chaining.
type Registry struct {
	builtins  []builtinDef
	conds     []condDef
	maths     []mathDef
	paramdefs []paramDef
	nAbstract int32

	rawBuiltins []hostabi.Builtin
	rawConds    []hostabi.CondDef
	rawMaths    []hostabi.MathFunc
	rawParams   []hostabi.ParamDef
	raw         hostabi.FeatureSet
}

// NewRegistry creates an empty feature registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddBuiltin appends a builtin command taking any number of arguments and
// installs its handler in the dispatch table. A name already present in
// the registry is dropped silently, keeping the first definition.
func (r *Registry) AddBuiltin(name string, handler builtins.Handler) *Registry {
	return r.AddBuiltinSpec(BuiltinSpec{
		Name:    name,
		Handler: handler,
		MaxArgs: NoMaxArgs,
	})
}

// AddBuiltinSpec appends a fully-specified builtin command descriptor.
func (r *Registry) AddBuiltinSpec(spec BuiltinSpec) *Registry {
	for _, b := range r.builtins {
		if b.spec.Name == spec.Name {
			return r
		}
	}
	builtins.Register(spec.Name, spec.Handler)
	d := builtinDef{spec: spec, name: zalloc.MustStrdup(spec.Name)}
	if spec.Options != "" {
		d.opts = zalloc.MustStrdup(spec.Options)
	}
	r.builtins = append(r.builtins, d)
	return r
}

// AddCondition appends a condition-test descriptor.
func (r *Registry) AddCondition(spec CondSpec) *Registry {
	d := condDef{spec: spec, name: zalloc.MustStrdup(spec.Name)}
	if spec.Module != "" {
		d.module = zalloc.MustStrdup(spec.Module)
	}
	r.conds = append(r.conds, d)
	return r
}

// AddMathFunc appends a math-function descriptor.
func (r *Registry) AddMathFunc(spec MathFuncSpec) *Registry {
	r.maths = append(r.maths, mathDef{spec: spec, name: zalloc.MustStrdup(spec.Name)})
	return r
}

// AddParam appends a parameter-definition descriptor.
func (r *Registry) AddParam(spec ParamSpec) *Registry {
	r.paramdefs = append(r.paramdefs, paramDef{spec: spec, name: zalloc.MustStrdup(spec.Name)})
	return r
}

// Abstract declares n abstract features beyond the four descriptor kinds.
func (r *Registry) Abstract(n int32) *Registry {
	r.nAbstract = n
	return r
}

// BuiltinCount returns the number of builtin descriptors after dedup.
func (r *Registry) BuiltinCount() int {
	return len(r.builtins)
}

// BuiltinNames returns the registered builtin names in definition order.
func (r *Registry) BuiltinNames() []string {
	names := make([]string, len(r.builtins))
	for i, b := range r.builtins {
		names[i] = b.spec.Name
	}
	return names
}

// Materialize regenerates the four raw descriptor arrays from the current
// definitions and returns the feature set pointing into them. The returned
// pointers stay valid until the next Materialize call; the registry retains
// the backing storage so the shell can keep reading it in between.
func (r *Registry) Materialize() *hostabi.FeatureSet {
	r.rawBuiltins = make([]hostabi.Builtin, len(r.builtins))
	for i, b := range r.builtins {
		r.rawBuiltins[i] = hostabi.Builtin{
			Node:        hostabi.HashNode{Nam: b.name.Ptr()},
			HandlerFunc: builtins.Trampoline,
			MinArgs:     b.spec.MinArgs,
			MaxArgs:     b.spec.MaxArgs,
		}
		if b.opts != nil {
			r.rawBuiltins[i].Optstr = b.opts.Ptr()
		}
	}

	r.rawConds = make([]hostabi.CondDef, len(r.conds))
	for i, c := range r.conds {
		r.rawConds[i] = hostabi.CondDef{
			Name:    c.name.Ptr(),
			Flags:   c.spec.Flags,
			Handler: c.spec.Handler,
			Min:     c.spec.Min,
			Max:     c.spec.Max,
		}
		if c.module != nil {
			r.rawConds[i].Module = c.module.Ptr()
		}
	}

	r.rawMaths = make([]hostabi.MathFunc, len(r.maths))
	for i, m := range r.maths {
		r.rawMaths[i] = hostabi.MathFunc{
			Name:    m.name.Ptr(),
			Flags:   m.spec.Flags,
			NumFunc: m.spec.NumHandler,
			StrFunc: m.spec.StrHandler,
			MinArgs: m.spec.MinArgs,
			MaxArgs: m.spec.MaxArgs,
		}
	}

	r.rawParams = make([]hostabi.ParamDef, len(r.paramdefs))
	for i, p := range r.paramdefs {
		r.rawParams[i] = hostabi.ParamDef{
			Name:  p.name.Ptr(),
			Flags: p.spec.Flags,
			Var:   p.spec.Var,
			GSU:   p.spec.GSU,
		}
	}

	r.raw = hostabi.FeatureSet{
		BnSize:    int32(len(r.rawBuiltins)),
		CdSize:    int32(len(r.rawConds)),
		MfSize:    int32(len(r.rawMaths)),
		PdSize:    int32(len(r.rawParams)),
		NAbstract: r.nAbstract,
	}
	if len(r.rawBuiltins) > 0 {
		r.raw.BnList = &r.rawBuiltins[0]
	}
	if len(r.rawConds) > 0 {
		r.raw.CdList = &r.rawConds[0]
	}
	if len(r.rawMaths) > 0 {
		r.raw.MfList = &r.rawMaths[0]
	}
	if len(r.rawParams) > 0 {
		r.raw.PdList = &r.rawParams[0]
	}
	return &r.raw
}
