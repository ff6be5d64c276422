package module

import (
	"testing"

	"go.uber.org/zap"

	"github.com/zshmod/zsh-runtime/builtins"
	"github.com/zshmod/zsh-runtime/features"
	"github.com/zshmod/zsh-runtime/hostabi"
	"github.com/zshmod/zsh-runtime/hosttest"
)

type testModule struct {
	name     string
	setupErr error
	bootErr  error

	setups   int
	boots    int
	cleanups int
	finishes int
}

func (m *testModule) Setup() error {
	m.setups++
	return m.setupErr
}

func (m *testModule) Features() *features.Registry {
	return features.NewRegistry().
		AddBuiltin(m.name, func(name string, args []string) int32 {
			return 42
		})
}

func (m *testModule) Boot() error {
	m.boots++
	return m.bootErr
}

func (m *testModule) Cleanup() error {
	m.cleanups++
	return nil
}

func (m *testModule) Finish() error {
	m.finishes++
	return nil
}

func bindHost(t *testing.T) *hosttest.Host {
	t.Helper()
	h := hosttest.New()
	hostabi.Bind(h)
	t.Cleanup(func() { hostabi.Bind(nil) })
	SetLogger(zap.NewNop())
	return h
}

func TestSetup_RunsExactlyOnce(t *testing.T) {
	bindHost(t)
	mod := &testModule{name: "once"}
	store := NewStore(func() (Module, error) { return mod, nil })

	if got := store.Setup(nil); got != 0 {
		t.Fatalf("first setup = %d", got)
	}
	if got := store.Setup(nil); got != 1 {
		t.Fatalf("second setup = %d, want 1", got)
	}
	if mod.setups != 1 {
		t.Fatalf("Setup ran %d times", mod.setups)
	}
}

func TestSetup_FactoryError(t *testing.T) {
	bindHost(t)
	store := NewStore(func() (Module, error) {
		return nil, hosttestErr
	})

	if got := store.Setup(nil); got != 1 {
		t.Fatalf("setup = %d, want 1", got)
	}
	// A failed construction leaves the store empty: setup may be retried.
	if _, err := store.Instance(); err == nil {
		t.Fatal("instance present after failed setup")
	}
}

var hosttestErr = errTest("construction refused")

type errTest string

func (e errTest) Error() string { return string(e) }

func TestSetup_ModuleSetupError(t *testing.T) {
	bindHost(t)
	mod := &testModule{name: "badsetup", setupErr: hosttestErr}
	store := NewStore(func() (Module, error) { return mod, nil })

	if got := store.Setup(nil); got != 1 {
		t.Fatalf("setup = %d, want 1", got)
	}
	if _, err := store.Instance(); err == nil {
		t.Fatal("instance present after failed setup")
	}
}

func TestSetup_NoFactory(t *testing.T) {
	bindHost(t)
	store := NewStore(nil)

	if got := store.Setup(nil); got != 1 {
		t.Fatalf("setup = %d, want 1", got)
	}
}

func TestBoot_BeforeSetupPanics(t *testing.T) {
	bindHost(t)
	store := NewStore(func() (Module, error) { return &testModule{name: "early"}, nil })

	defer func() {
		if recover() == nil {
			t.Fatal("boot before setup did not panic")
		}
	}()
	store.Boot(nil)
}

func TestFeatures_WritesNameArray(t *testing.T) {
	bindHost(t)
	mod := &testModule{name: "greet"}
	store := NewStore(func() (Module, error) { return mod, nil })

	if got := store.Setup(nil); got != 0 {
		t.Fatalf("setup = %d", got)
	}

	var out **byte
	if got := store.Features(nil, &out); got != 0 {
		t.Fatalf("features = %d", got)
	}
	names := hostabi.ArgvStrings(out)
	if len(names) != 1 || names[0] != "b:greet" {
		t.Fatalf("feature names = %v", names)
	}

	// A second query regenerates the same set.
	if got := store.Features(nil, &out); got != 0 {
		t.Fatalf("second features = %d", got)
	}
	if names := hostabi.ArgvStrings(out); len(names) != 1 || names[0] != "b:greet" {
		t.Fatalf("second feature names = %v", names)
	}
}

func TestEnables_ForwardsHostStatus(t *testing.T) {
	h := bindHost(t)
	h.FeatureStatus = 3
	store := NewStore(func() (Module, error) { return &testModule{name: "enab"}, nil })

	if got := store.Setup(nil); got != 0 {
		t.Fatalf("setup = %d", got)
	}

	var enables *int32
	if got := store.Enables(nil, &enables); got != 3 {
		t.Fatalf("enables = %d, want host status 3", got)
	}
	if h.EnablesRequests != 1 {
		t.Fatalf("host saw %d enables requests", h.EnablesRequests)
	}
}

func TestLifecycle_EndToEnd(t *testing.T) {
	bindHost(t)
	mod := &testModule{name: "hello"}
	store := NewStore(func() (Module, error) { return mod, nil })

	if got := store.Setup(nil); got != 0 {
		t.Fatalf("setup = %d", got)
	}
	var out **byte
	if got := store.Features(nil, &out); got != 0 {
		t.Fatalf("features = %d", got)
	}
	var enables *int32
	if got := store.Enables(nil, &enables); got != 0 {
		t.Fatalf("enables = %d", got)
	}
	if got := store.Boot(nil); got != 0 {
		t.Fatalf("boot = %d", got)
	}

	// The builtin registered during feature negotiation is dispatchable
	// through the C-shaped trampoline.
	name := append([]byte("hello"), 0)
	if status := dispatchTrampoline(&name[0]); status != 42 {
		t.Fatalf("builtin returned %d, want 42", status)
	}

	if got := store.Cleanup(nil); got != 0 {
		t.Fatalf("cleanup = %d", got)
	}
	if got := store.Finish(nil); got != 0 {
		t.Fatalf("finish = %d", got)
	}
	if mod.boots != 1 || mod.cleanups != 1 || mod.finishes != 1 {
		t.Fatalf("lifecycle counts: %+v", mod)
	}
}

func dispatchTrampoline(name *byte) int32 {
	argv := []*byte{nil}
	return builtins.Trampoline(name, &argv[0], nil, 0)
}

func TestLifecycle_BootFailure(t *testing.T) {
	bindHost(t)
	mod := &testModule{name: "bootfail", bootErr: hosttestErr}
	store := NewStore(func() (Module, error) { return mod, nil })

	if got := store.Setup(nil); got != 0 {
		t.Fatalf("setup = %d", got)
	}
	if got := store.Boot(nil); got != 1 {
		t.Fatalf("boot = %d, want 1", got)
	}
}
