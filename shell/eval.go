// Package shell evaluates script fragments in the hosting shell.
//
// Eval is the escape hatch for behavior the bridge has no native call
// for: autoloading functions, setting options, or driving builtins the
// module does not own. The script runs as if sourced, in the shell's
// current context.
package shell

import (
	"github.com/zshmod/zsh-runtime/errors"
	"github.com/zshmod/zsh-runtime/hostabi"
)

// tag identifies this library in the shell's error messages when an
// evaluated script fails.
const tag = "zsh-runtime"

// Eval runs script in the current shell context. The script must not
// contain NUL bytes; an empty script is a no-op.
func Eval(script string) error {
	if script == "" {
		return nil
	}
	if hostabi.HasNUL(script) {
		return errors.New(errors.PhaseShell, errors.KindInvalidName).
			Detail("script contains an embedded NUL byte").
			Build()
	}

	cscript := append([]byte(script), 0)
	ctag := append([]byte(tag), 0)
	hostabi.Active().ExecString(&cscript[0], &ctag[0])
	return nil
}
