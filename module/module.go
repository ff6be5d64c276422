package module

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/zshmod/zsh-runtime/errors"
	"github.com/zshmod/zsh-runtime/features"
	"github.com/zshmod/zsh-runtime/hostabi"
)

// Module is the contract an extension implements. The lifecycle methods
// mirror the shell's entry points one to one; Features is called once,
// after Setup, to learn what the module exports.
type Module interface {
	// Setup runs before feature negotiation. No builtins, parameters, or
	// hooks are live yet.
	Setup() error

	// Features returns the module's feature registry. The registry is
	// queried once and retained for the lifetime of the module.
	Features() *features.Registry

	// Boot runs after the shell has enabled the module's features. This
	// is the first point where registered parameters exist and hooks may
	// be attached.
	Boot() error

	// Cleanup runs when the shell unloads the module but the process
	// keeps running. Undo what Boot did.
	Cleanup() error

	// Finish runs last, after cleanup, when the module is being
	// discarded. Release anything Setup acquired.
	Finish() error
}

// Factory constructs a module instance. It runs exactly once, inside the
// first setup entry point.
type Factory func() (Module, error)

// Store holds a single module instance across the lifecycle entry points.
// The shell serializes lifecycle calls, but the mutex keeps the store safe
// against misbehaving hosts and concurrent tests.
type Store struct {
	mu       sync.Mutex
	factory  Factory
	instance Module
	registry *features.Registry
}

// NewStore returns an empty store wired to the given factory. Production
// modules use the package-level Default store; tests build their own.
func NewStore(factory Factory) *Store {
	return &Store{factory: factory}
}

// Default is the store the exported entry points operate on.
var Default = &Store{}

// Register installs the factory the first setup call will run. An
// extension calls this from init or from its main package.
func Register(factory Factory) {
	Default.mu.Lock()
	defer Default.mu.Unlock()
	Default.factory = factory
}

// Setup is the setup_ entry point. It constructs the module on first call
// and runs its Setup. A second call, or a factory or Setup failure, logs
// and returns 1 without touching any existing instance.
func (s *Store) Setup(m unsafe.Pointer) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.instance != nil {
		Logger().Error("setup called twice", zap.String("entry", "setup"))
		return 1
	}
	if s.factory == nil {
		Logger().Error("no module factory registered", zap.String("entry", "setup"))
		return 1
	}

	inst, err := s.factory()
	if err != nil {
		Logger().Error("module construction failed", zap.Error(err))
		return 1
	}
	if err := inst.Setup(); err != nil {
		Logger().Error("module setup failed", zap.Error(err))
		return 1
	}

	s.instance = inst
	return 0
}

// Features is the features_ entry point. It renders the module's feature
// set through the shell and writes the resulting name array to out.
func (s *Store) Features(m unsafe.Pointer, out ***byte) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs := s.featureSetLocked()
	*out = hostabi.Active().FeaturesArray(m, fs)
	return 0
}

// Enables is the enables_ entry point. The enable bitmap is handed to the
// shell verbatim; the shell's status is the entry point's status.
func (s *Store) Enables(m unsafe.Pointer, enables **int32) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs := s.featureSetLocked()
	return hostabi.Active().HandleFeatures(m, fs, enables)
}

// Boot is the boot_ entry point.
func (s *Store) Boot(m unsafe.Pointer) int32 {
	return s.lifecycle("boot", Module.Boot)
}

// Cleanup is the cleanup_ entry point.
func (s *Store) Cleanup(m unsafe.Pointer) int32 {
	return s.lifecycle("cleanup", Module.Cleanup)
}

// Finish is the finish_ entry point.
func (s *Store) Finish(m unsafe.Pointer) int32 {
	return s.lifecycle("finish", Module.Finish)
}

// Instance returns the constructed module, or an error before setup.
// Extension code uses this to reach its own state from builtin handlers.
func (s *Store) Instance() (Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.instance == nil {
		return nil, errors.NotInitialized(errors.PhaseLifecycle, "module instance")
	}
	return s.instance, nil
}

func (s *Store) lifecycle(entry string, call func(Module) error) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst := s.requireLocked(entry)
	if err := call(inst); err != nil {
		Logger().Error("lifecycle entry failed",
			zap.String("entry", entry),
			zap.Error(err))
		return 1
	}
	return 0
}

// featureSetLocked materializes the registry, retaining it so the raw
// descriptor arrays stay reachable while the shell holds pointers into
// them.
func (s *Store) featureSetLocked() *hostabi.FeatureSet {
	inst := s.requireLocked("features")
	if s.registry == nil {
		s.registry = inst.Features()
	}
	return s.registry.Materialize()
}

func (s *Store) requireLocked(entry string) Module {
	if s.instance == nil {
		panic("module: " + entry + " entry point before setup (module not initialized)")
	}
	return s.instance
}

// The exported entry points the cgo shim forwards to. Their signatures
// match the shell's module_features/handlefeatures calling convention.

func Setup(m unsafe.Pointer) int32 { return Default.Setup(m) }

func Features(m unsafe.Pointer, out ***byte) int32 { return Default.Features(m, out) }

func Enables(m unsafe.Pointer, enables **int32) int32 { return Default.Enables(m, enables) }

func Boot(m unsafe.Pointer) int32 { return Default.Boot(m) }

func Cleanup(m unsafe.Pointer) int32 { return Default.Cleanup(m) }

func Finish(m unsafe.Pointer) int32 { return Default.Finish(m) }
