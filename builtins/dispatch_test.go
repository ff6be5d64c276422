package builtins

import (
	"testing"
)

func cstr(s string) *byte {
	buf := append([]byte(s), 0)
	return &buf[0]
}

func cargv(elems ...string) **byte {
	vec := make([]*byte, len(elems)+1)
	for i, e := range elems {
		vec[i] = cstr(e)
	}
	return &vec[0]
}

func TestRegisterAndDispatch(t *testing.T) {
	t.Cleanup(reset)

	var gotName string
	var gotArgs []string
	Register("hello", func(name string, args []string) int32 {
		gotName = name
		gotArgs = args
		return 42
	})

	status := Dispatch("hello", []string{"a", "b"})
	if status != 42 {
		t.Fatalf("Dispatch = %d, want 42", status)
	}
	if gotName != "hello" {
		t.Fatalf("handler saw name %q", gotName)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "a" || gotArgs[1] != "b" {
		t.Fatalf("handler saw args %v", gotArgs)
	}
}

func TestDispatch_UnknownReturnsOne(t *testing.T) {
	t.Cleanup(reset)

	if status := Dispatch("missing", nil); status != 1 {
		t.Fatalf("Dispatch = %d, want 1", status)
	}
}

func TestRegister_FirstWins(t *testing.T) {
	t.Cleanup(reset)

	Register("dup", func(string, []string) int32 { return 10 })
	Register("dup", func(string, []string) int32 { return 20 })

	if status := Dispatch("dup", nil); status != 10 {
		t.Fatalf("Dispatch = %d, want the first handler's 10", status)
	}
}

func TestRegister_NilHandlerIgnored(t *testing.T) {
	t.Cleanup(reset)

	Register("noop", nil)
	if Registered("noop") {
		t.Fatal("nil handler must not register")
	}
}

func TestTrampoline(t *testing.T) {
	t.Cleanup(reset)

	var got []string
	Register("tramp", func(name string, args []string) int32 {
		got = append([]string{name}, args...)
		return 7
	})

	status := Trampoline(cstr("tramp"), cargv("x", "y"), nil, 0)
	if status != 7 {
		t.Fatalf("Trampoline = %d", status)
	}
	if len(got) != 3 || got[0] != "tramp" || got[1] != "x" || got[2] != "y" {
		t.Fatalf("handler saw %v", got)
	}
}

func TestTrampoline_SkipsInvalidUTF8Args(t *testing.T) {
	t.Cleanup(reset)

	var got []string
	Register("enc", func(name string, args []string) int32 {
		got = args
		return 0
	})

	bad := []byte{0xff, 0}
	vec := []*byte{cstr("keep"), &bad[0], cstr("also"), nil}
	Trampoline(cstr("enc"), &vec[0], nil, 0)

	if len(got) != 2 || got[0] != "keep" || got[1] != "also" {
		t.Fatalf("args = %v", got)
	}
}

func TestTrampoline_UnknownName(t *testing.T) {
	t.Cleanup(reset)

	if status := Trampoline(cstr("ghost"), nil, nil, 0); status != 1 {
		t.Fatalf("Trampoline = %d, want 1", status)
	}
}
