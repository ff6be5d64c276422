package hostabi

import (
	"testing"
)

// cstr builds a NUL-terminated byte buffer backed by Go memory.
func cstr(s string) *byte {
	buf := append([]byte(s), 0)
	return &buf[0]
}

// cargv builds a NUL-terminated pointer vector backed by Go memory.
func cargv(elems ...*byte) **byte {
	vec := make([]*byte, len(elems)+1)
	copy(vec, elems)
	return &vec[0]
}

func TestGoString(t *testing.T) {
	if got := GoString(cstr("hello")); got != "hello" {
		t.Fatalf("GoString = %q", got)
	}
	if got := GoString(nil); got != "" {
		t.Fatalf("GoString(nil) = %q", got)
	}
	if got := GoString(cstr("")); got != "" {
		t.Fatalf("GoString(empty) = %q", got)
	}
}

func TestStrlen(t *testing.T) {
	if n := Strlen(cstr("abcd")); n != 4 {
		t.Fatalf("Strlen = %d", n)
	}
	if n := Strlen(nil); n != 0 {
		t.Fatalf("Strlen(nil) = %d", n)
	}
}

func TestArgvStrings(t *testing.T) {
	argv := cargv(cstr("one"), cstr("two"), cstr("three"))
	got := ArgvStrings(argv)
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %d args, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("arg %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestArgvStrings_SkipsInvalidUTF8(t *testing.T) {
	bad := []byte{0xff, 0xfe, 0}
	argv := cargv(cstr("ok"), &bad[0], cstr("also"))
	got := ArgvStrings(argv)
	if len(got) != 2 || got[0] != "ok" || got[1] != "also" {
		t.Fatalf("ArgvStrings = %v", got)
	}
}

func TestArgvStrings_Nil(t *testing.T) {
	if got := ArgvStrings(nil); got != nil {
		t.Fatalf("ArgvStrings(nil) = %v", got)
	}
}

func TestHasNUL(t *testing.T) {
	if HasNUL("plain") {
		t.Fatal("false positive")
	}
	if !HasNUL("a\x00b") {
		t.Fatal("missed embedded NUL")
	}
}

func TestParamValue_Union(t *testing.T) {
	var v ParamValue

	s := cstr("value")
	v.SetStr(s)
	if v.Str() != s {
		t.Fatal("Str round-trip failed")
	}

	v.SetInt(42)
	if v.Int() != 42 {
		t.Fatalf("Int = %d", v.Int())
	}

	v.SetFloat(2.5)
	if v.Float() != 2.5 {
		t.Fatalf("Float = %g", v.Float())
	}

	arr := cargv(cstr("a"))
	v.SetArr(arr)
	if v.Arr() != arr {
		t.Fatal("Arr round-trip failed")
	}
}

func TestParam_KindAndLive(t *testing.T) {
	tests := []struct {
		flags int32
		want  int32
	}{
		{0, PMScalar},
		{PMArray, PMArray},
		{PMInteger, PMInteger},
		{PMFFloat, PMFFloat},
		{PMEFloat, PMFFloat},
	}
	for _, tt := range tests {
		p := &Param{Node: HashNode{Nam: cstr("X"), Flags: tt.flags}}
		if got := p.Kind(); got != tt.want {
			t.Fatalf("Kind(flags=%#x) = %d, want %d", tt.flags, got, tt.want)
		}
		if !p.Live() {
			t.Fatal("node with name should be live")
		}
	}

	dead := &Param{}
	if dead.Live() {
		t.Fatal("node without name should be dead")
	}
	var nilParam *Param
	if nilParam.Live() {
		t.Fatal("nil node should be dead")
	}
}

func TestArgvAccessors(t *testing.T) {
	a, b := cstr("a"), cstr("b")
	argv := cargv(a, b)
	if ArgvLen(argv) != 2 {
		t.Fatalf("ArgvLen = %d", ArgvLen(argv))
	}
	if ArgvAt(argv, 0) != a || ArgvAt(argv, 1) != b {
		t.Fatal("ArgvAt mismatch")
	}
	c := cstr("c")
	SetArgvAt(argv, 1, c)
	if ArgvAt(argv, 1) != c {
		t.Fatal("SetArgvAt did not store")
	}
}
