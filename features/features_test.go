package features

import (
	"testing"

	"github.com/zshmod/zsh-runtime/builtins"
	"github.com/zshmod/zsh-runtime/hostabi"
	"github.com/zshmod/zsh-runtime/hosttest"
)

func bindHost(t *testing.T) *hosttest.Host {
	t.Helper()
	h := hosttest.New()
	hostabi.Bind(h)
	t.Cleanup(func() { hostabi.Bind(nil) })
	return h
}

func nopHandler(string, []string) int32 { return 0 }

func TestMaterialize_BuiltinCountMatchesAdds(t *testing.T) {
	bindHost(t)

	r := NewRegistry().
		AddBuiltin("one", nopHandler).
		AddBuiltin("two", nopHandler).
		AddBuiltin("two", nopHandler) // dropped: duplicate name

	fs := r.Materialize()
	if fs.BnSize != 2 {
		t.Fatalf("BnSize = %d, want 2 after dedup", fs.BnSize)
	}
	if r.BuiltinCount() != 2 {
		t.Fatalf("BuiltinCount = %d", r.BuiltinCount())
	}
}

func TestMaterialize_BuiltinDescriptorFields(t *testing.T) {
	bindHost(t)

	r := NewRegistry().AddBuiltinSpec(BuiltinSpec{
		Name:    "greet",
		Handler: nopHandler,
		MinArgs: 1,
		MaxArgs: 3,
		Options: "qv",
	})
	fs := r.Materialize()

	b := fs.BnList
	if got := hostabi.GoString(b.Node.Nam); got != "greet" {
		t.Fatalf("name = %q", got)
	}
	if b.MinArgs != 1 || b.MaxArgs != 3 {
		t.Fatalf("args = %d..%d", b.MinArgs, b.MaxArgs)
	}
	if got := hostabi.GoString(b.Optstr); got != "qv" {
		t.Fatalf("optstr = %q", got)
	}
	if b.HandlerFunc == nil {
		t.Fatal("descriptor must carry the trampoline")
	}
}

func TestMaterialize_RegeneratesInPlace(t *testing.T) {
	bindHost(t)

	r := NewRegistry().AddBuiltin("first", nopHandler)
	fs1 := r.Materialize()
	if fs1.BnSize != 1 {
		t.Fatalf("BnSize = %d", fs1.BnSize)
	}

	r.AddBuiltin("second", nopHandler)
	fs2 := r.Materialize()
	if fs2.BnSize != 2 {
		t.Fatalf("BnSize = %d after regeneration", fs2.BnSize)
	}
	// The registry hands out the same retained feature set storage.
	if fs1 != fs2 {
		t.Fatal("Materialize should reuse the registry-held feature set")
	}
}

func TestAddBuiltin_InstallsDispatchHandler(t *testing.T) {
	bindHost(t)

	NewRegistry().AddBuiltin("feature-cmd", func(name string, args []string) int32 {
		return 42
	})

	if got := builtins.Dispatch("feature-cmd", nil); got != 42 {
		t.Fatalf("Dispatch = %d, want 42", got)
	}
}

func TestMaterialize_EmptyRegistry(t *testing.T) {
	bindHost(t)

	fs := NewRegistry().Materialize()
	if fs.BnSize != 0 || fs.CdSize != 0 || fs.MfSize != 0 || fs.PdSize != 0 {
		t.Fatalf("unexpected sizes: %+v", fs)
	}
	if fs.BnList != nil || fs.CdList != nil {
		t.Fatal("empty lists must be nil")
	}
}

func TestMaterialize_OtherDescriptorKinds(t *testing.T) {
	bindHost(t)

	cond := func(args **byte, id int32) int32 { return 1 }

	r := NewRegistry().
		AddCondition(CondSpec{Name: "is-happy", Min: 1, Max: 1, Module: "demo", Handler: cond}).
		AddMathFunc(MathFuncSpec{Name: "clamp", MinArgs: 3, MaxArgs: 3}).
		AddParam(ParamSpec{Name: "DEMO_STATE"}).
		Abstract(1)

	fs := r.Materialize()
	if fs.CdSize != 1 || fs.MfSize != 1 || fs.PdSize != 1 || fs.NAbstract != 1 {
		t.Fatalf("sizes: %+v", fs)
	}
	if got := hostabi.GoString(fs.CdList.Name); got != "is-happy" {
		t.Fatalf("cond name = %q", got)
	}
	if got := hostabi.GoString(fs.CdList.Module); got != "demo" {
		t.Fatalf("cond module = %q", got)
	}
	if got := hostabi.GoString(fs.MfList.Name); got != "clamp" {
		t.Fatalf("math name = %q", got)
	}
	if got := hostabi.GoString(fs.PdList.Name); got != "DEMO_STATE" {
		t.Fatalf("param name = %q", got)
	}
}
