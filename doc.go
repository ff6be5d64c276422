// Package zshruntime provides a Go bridge for writing zsh loadable modules.
//
// A zsh module is native code loaded into a long-lived interactive shell.
// The shell owns a C-style plugin ABI: it allocates and frees memory with its
// own allocator, represents module features as arrays of C structs holding
// raw function pointers, and drives the module through a fixed sequence of
// named entry points. This library is the safe side of that boundary.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	zshruntime/        Root package with the core Allocator interface
//	├── hostabi/       Raw host ABI types and the Host call surface
//	├── zalloc/        Host-allocator-backed memory blocks and strings
//	├── params/        Typed shell parameter access with cached direct handles
//	├── builtins/      Builtin command dispatch table and C trampoline
//	├── features/      Feature descriptor registry and raw array materialization
//	├── hooks/         Shell event hook registration and execution
//	├── module/        Module lifecycle entry points and instance storage
//	├── shell/         Script evaluation inside the host shell
//	├── errors/        Structured error types for debugging
//	└── hosttest/      In-memory host implementation for tests and tooling
//
// # Quick Start
//
// Define a module and register it:
//
//	type Greeter struct{}
//
//	func (g *Greeter) Setup() error   { return nil }
//	func (g *Greeter) Boot() error    { return nil }
//	func (g *Greeter) Cleanup() error { return nil }
//	func (g *Greeter) Finish() error  { return nil }
//
//	func (g *Greeter) Features() *features.Registry {
//	    return features.NewRegistry().
//	        AddBuiltin("greet", func(name string, args []string) int32 {
//	            fmt.Println("hello from", name)
//	            return 0
//	        })
//	}
//
//	func init() {
//	    module.Register(func() (module.Module, error) { return &Greeter{}, nil })
//	}
//
// The shell invokes the fixed entry points setup_, features_, enables_,
// boot_, cleanup_ and finish_; the generated cgo shim forwards each of them
// to the corresponding function in the module package.
//
// # Memory Model
//
// Every allocation that crosses the boundary uses the host's allocator. The
// zalloc package wraps each allocation in a Block with exactly two terminal
// operations: Free, which returns the memory to the host allocator, and
// Transfer, which hands permanent ownership to the host. After Transfer the
// host frees the memory itself; the module must never touch it again.
//
// # Thread Safety
//
// The host model is single-threaded and reentrant: entry points and callbacks
// run sequentially, though a callback may trigger further host activity before
// returning. Shared state is still mutex-guarded so the bridge stays sound if
// a host breaks that assumption, but nothing here blocks on contention or runs
// asynchronously.
package zshruntime
