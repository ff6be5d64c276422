package hooks

import (
	stderrors "errors"
	"unsafe"

	"go.uber.org/zap"

	"github.com/zshmod/zsh-runtime/errors"
	"github.com/zshmod/zsh-runtime/hostabi"
	"github.com/zshmod/zsh-runtime/params"
)

// placeholder is the entry seeded into a hook's _functions array to make
// the shell fire native callbacks. ":" is the no-op builtin.
const placeholder = ":"

func cname(name string) (*byte, error) {
	if name == "" || hostabi.HasNUL(name) {
		return nil, errors.InvalidName(errors.PhaseHook, name)
	}
	buf := append([]byte(name), 0)
	return &buf[0], nil
}

// Add registers fn on the named hook. Registering the same function on the
// same hook twice fails with already_exists; an unknown hook name fails
// with not_found. On success the hook's script-visible activation array is
// seeded when absent or empty (see the package comment).
func Add(name string, fn hostabi.HookFn) error {
	c, err := cname(name)
	if err != nil {
		return err
	}
	host := hostabi.Active()
	def := host.HookDefByName(c)
	if def == nil {
		return errors.NotFound(errors.PhaseHook, name)
	}

	if contains(def, fn) {
		return errors.AlreadyExists(errors.PhaseHook, name)
	}

	host.AddHookFunc(c, fn)
	activate(name)
	return nil
}

// Remove deregisters fn from the named hook. An unknown hook, or a
// function that was never registered on it, fails with not_found.
func Remove(name string, fn hostabi.HookFn) error {
	c, err := cname(name)
	if err != nil {
		return err
	}
	host := hostabi.Active()
	def := host.HookDefByName(c)
	if def == nil {
		return errors.NotFound(errors.PhaseHook, name)
	}
	if !contains(def, fn) {
		return errors.New(errors.PhaseHook, errors.KindNotFound).
			Name(name).
			Detail("function not registered on this hook").
			Build()
	}
	host.DeleteHookFunc(c, fn)
	return nil
}

// Run fires the named hook with no data pointer.
func Run(name string) error {
	return RunWithData(name, nil)
}

// RunWithData fires the named hook, passing data to every registered
// callback. Each callback is responsible for knowing the data's real type.
func RunWithData(name string, data unsafe.Pointer) error {
	c, err := cname(name)
	if err != nil {
		return err
	}
	host := hostabi.Active()
	def := host.HookDefByName(c)
	if def == nil {
		return errors.NotFound(errors.PhaseHook, name)
	}
	host.RunHookDef(def, data)
	return nil
}

// Names lists the hooks the shell currently defines.
func Names() []string {
	return hostabi.Active().HookNames()
}

func contains(def *hostabi.HookDef, fn hostabi.HookFn) bool {
	if def.Funcs == nil {
		return false
	}
	id := hostabi.FnID(fn)
	for node := def.Funcs.First; node != nil; node = node.Next {
		if hostabi.FnID(node.Fn) == id {
			return true
		}
	}
	return false
}

// activate seeds the hook's script-visible array when the shell would
// otherwise skip native callbacks for the event. Best effort: a failure
// leaves the registration in place and is only logged, since some hosts
// fire native hooks regardless.
func activate(name string) {
	arrName := name + "_functions"
	existing, err := params.GetList(arrName)
	switch {
	case err == nil && len(existing) > 0:
		return
	case err != nil && !stderrors.Is(err, &errors.Error{Phase: errors.PhaseParam, Kind: errors.KindNotFound}):
		Logger().Warn("hook activation array unreadable",
			zap.String("hook", name),
			zap.Error(err))
		return
	}
	if err := params.SetList(arrName, []string{placeholder}); err != nil {
		Logger().Warn("hook activation array not seeded",
			zap.String("hook", name),
			zap.Error(err))
		return
	}
	Logger().Debug("seeded hook activation array",
		zap.String("hook", name),
		zap.String("array", arrName))
}
