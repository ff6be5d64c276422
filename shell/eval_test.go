package shell

import (
	stderrors "errors"
	"testing"

	"github.com/zshmod/zsh-runtime/errors"
	"github.com/zshmod/zsh-runtime/hostabi"
	"github.com/zshmod/zsh-runtime/hosttest"
)

func bindHost(t *testing.T) *hosttest.Host {
	t.Helper()
	h := hosttest.New()
	hostabi.Bind(h)
	t.Cleanup(func() { hostabi.Bind(nil) })
	return h
}

func TestEval(t *testing.T) {
	h := bindHost(t)

	if err := Eval("autoload -Uz compinit"); err != nil {
		t.Fatal(err)
	}
	if err := Eval("setopt extendedglob"); err != nil {
		t.Fatal(err)
	}

	got := h.Executed()
	if len(got) != 2 || got[0] != "autoload -Uz compinit" || got[1] != "setopt extendedglob" {
		t.Fatalf("executed scripts = %v", got)
	}
}

func TestEval_Empty(t *testing.T) {
	h := bindHost(t)

	if err := Eval(""); err != nil {
		t.Fatal(err)
	}
	if len(h.Executed()) != 0 {
		t.Fatal("empty script reached the shell")
	}
}

func TestEval_EmbeddedNUL(t *testing.T) {
	h := bindHost(t)

	err := Eval("echo hi\x00; rm -rf /")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseShell, Kind: errors.KindInvalidName}) {
		t.Fatalf("expected invalid_name, got %v", err)
	}
	if len(h.Executed()) != 0 {
		t.Fatal("script with NUL reached the shell")
	}
}
