package params

import (
	"unsafe"

	"github.com/zshmod/zsh-runtime/errors"
	"github.com/zshmod/zsh-runtime/hostabi"
	"github.com/zshmod/zsh-runtime/zalloc"
)

// cname renders a parameter name as a NUL-terminated buffer for a single
// host call. The shell copies names it wants to keep, so Go-backed memory
// is fine here.
func cname(name string) (*byte, error) {
	if name == "" || hostabi.HasNUL(name) {
		return nil, errors.InvalidName(errors.PhaseParam, name)
	}
	buf := append([]byte(name), 0)
	return &buf[0], nil
}

// GetScalar returns the value of a scalar parameter.
func GetScalar(name string) (string, error) {
	c, err := cname(name)
	if err != nil {
		return "", err
	}
	ptr := hostabi.Active().GetSParam(c)
	if ptr == nil {
		return "", errors.NotFound(errors.PhaseParam, name)
	}
	return hostabi.GoString(ptr), nil
}

// SetScalar stores a scalar parameter, creating it when absent. The value
// is duplicated into host memory and ownership transferred to the shell.
func SetScalar(name, value string) error {
	c, err := cname(name)
	if err != nil {
		return err
	}
	zs, err := zalloc.Strdup(value)
	if err != nil {
		return err
	}
	if !hostabi.Active().SetSParam(c, zs.Transfer()) {
		// The shell owns the transferred string either way.
		return errors.HostFailure(errors.PhaseParam, name, "setsparam")
	}
	return nil
}

// GetInt returns the value of an integer parameter.
func GetInt(name string) (hostabi.Zlong, error) {
	c, err := cname(name)
	if err != nil {
		return 0, err
	}
	host := hostabi.Active()
	if !host.ParamNode(c).Live() {
		return 0, errors.NotFound(errors.PhaseParam, name)
	}
	return host.GetIParam(c), nil
}

// SetInt stores an integer parameter, creating it when absent.
func SetInt(name string, value hostabi.Zlong) error {
	c, err := cname(name)
	if err != nil {
		return err
	}
	if !hostabi.Active().SetIParam(c, value) {
		return errors.HostFailure(errors.PhaseParam, name, "setiparam")
	}
	return nil
}

// GetFloat returns the value of a float parameter. The module API has no
// generic float getter, so this reads through the parameter node.
func GetFloat(name string) (float64, error) {
	return Float(name).Get()
}

// SetFloat stores a float parameter. The parameter must already exist;
// the module API cannot create float parameters by name.
func SetFloat(name string, value float64) error {
	return Float(name).Set(value)
}

// GetList returns the elements of an array parameter in order.
func GetList(name string) ([]string, error) {
	c, err := cname(name)
	if err != nil {
		return nil, err
	}
	arr := hostabi.Active().GetAParam(c)
	if arr == nil {
		return nil, errors.NotFound(errors.PhaseParam, name)
	}
	return hostabi.ArgvStrings(arr), nil
}

// SetList stores an array parameter, creating it when absent. The vector
// and every element are allocated with the host allocator and ownership
// transferred to the shell.
func SetList(name string, values []string) error {
	c, err := cname(name)
	if err != nil {
		return err
	}
	arr, err := newHostArgv(values)
	if err != nil {
		return err
	}
	if !hostabi.Active().SetAParam(c, arr) {
		return errors.HostFailure(errors.PhaseParam, name, "setaparam")
	}
	return nil
}

// Unset removes a parameter. Removing an absent parameter is a no-op.
func Unset(name string) {
	c, err := cname(name)
	if err != nil {
		return
	}
	hostabi.Active().UnsetParam(c)
}

// newHostArgv builds a host-owned, NUL-terminated pointer array of
// host-duplicated strings. The caller hands the result to the shell, which
// frees it. Elements are validated before anything is allocated so a bad
// element cannot leak the good ones.
func newHostArgv(values []string) (**byte, error) {
	for _, v := range values {
		if hostabi.HasNUL(v) {
			return nil, errors.InvalidName(errors.PhaseParam, v)
		}
	}

	const ptrSize = unsafe.Sizeof(uintptr(0))
	vec := zalloc.New(uintptr(len(values)+1) * ptrSize)
	arr := (**byte)(vec.Ptr())
	for i, v := range values {
		zs := zalloc.MustStrdup(v)
		hostabi.SetArgvAt(arr, i, zs.Transfer())
	}
	hostabi.SetArgvAt(arr, len(values), nil)
	return (**byte)(vec.Transfer()), nil
}
