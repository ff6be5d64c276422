package params

import (
	"testing"

	"github.com/zshmod/zsh-runtime/errors"
)

func TestAnyHandle_Kind(t *testing.T) {
	h := bindHost(t)
	h.SeedScalar("S", "text")
	if err := SetInt("I", 1); err != nil {
		t.Fatal(err)
	}
	h.SetFParam("F", 1.5)
	if err := SetList("A", []string{"x"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want Kind
	}{
		{"S", KindScalar},
		{"I", KindInteger},
		{"F", KindFloat},
		{"A", KindArray},
	}
	for _, tt := range tests {
		got, err := Any(tt.name).Kind()
		if err != nil {
			t.Fatalf("Kind(%s): %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("Kind(%s) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestAnyHandle_GetString(t *testing.T) {
	h := bindHost(t)
	h.SeedScalar("S", "plain")
	if err := SetInt("I", -12); err != nil {
		t.Fatal(err)
	}
	h.SetFParam("F", 2.5)
	if err := SetList("A", []string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"S", "plain"},
		{"I", "-12"},
		{"F", "2.5"},
		{"A", "a b c"},
	}
	for _, tt := range tests {
		got, err := Any(tt.name).GetString()
		if err != nil {
			t.Fatalf("GetString(%s): %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("GetString(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAnyHandle_SetString(t *testing.T) {
	h := bindHost(t)
	h.SeedScalar("S", "")
	if err := SetInt("I", 0); err != nil {
		t.Fatal(err)
	}
	h.SetFParam("F", 0)
	if err := SetList("A", nil); err != nil {
		t.Fatal(err)
	}

	if err := Any("S").SetString("scalar text"); err != nil {
		t.Fatal(err)
	}
	if got, _ := GetScalar("S"); got != "scalar text" {
		t.Fatalf("S = %q", got)
	}

	if err := Any("I").SetString("99"); err != nil {
		t.Fatal(err)
	}
	if got, _ := GetInt("I"); got != 99 {
		t.Fatalf("I = %d", got)
	}

	if err := Any("F").SetString("0.75"); err != nil {
		t.Fatal(err)
	}
	if got, _ := GetFloat("F"); got != 0.75 {
		t.Fatalf("F = %g", got)
	}

	if err := Any("A").SetString("one two  three"); err != nil {
		t.Fatal(err)
	}
	got, _ := GetList("A")
	if len(got) != 3 || got[0] != "one" || got[1] != "two" || got[2] != "three" {
		t.Fatalf("A = %v", got)
	}
}

func TestAnyHandle_ParseErrors(t *testing.T) {
	bindHost(t)

	if err := SetInt("I", 0); err != nil {
		t.Fatal(err)
	}
	if err := Any("I").SetString("not a number"); !isKind(err, errors.PhaseParam, errors.KindParse) {
		t.Fatalf("expected parse error, got %v", err)
	}

	h := Any("MISSING")
	if _, err := h.GetString(); !isKind(err, errors.PhaseParam, errors.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
