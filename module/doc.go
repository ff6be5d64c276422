// Package module implements the shell module lifecycle protocol.
//
// A loadable module hands the shell six entry points: setup, features,
// enables, boot, cleanup, and finish, each returning 0 on success and
// nonzero on failure. This package owns that contract. An extension
// implements the Module interface, registers a factory with Register,
// and the entry points drive it:
//
//	func init() {
//	    module.Register(func() (module.Module, error) {
//	        return &Greeter{}, nil
//	    })
//	}
//
// The shell constructs the module exactly once: the first setup call runs
// the factory and the module's Setup; a repeated setup call fails without
// constructing a second instance. Any other entry point arriving before a
// successful setup is a protocol violation on the shell's side and panics.
//
// Entry points never return Go errors to the shell. Failures are logged
// (see Logger) and collapse to status 1.
package module
