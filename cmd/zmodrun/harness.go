package main

import (
	"fmt"

	"github.com/zshmod/zsh-runtime/examples/greeter"
	"github.com/zshmod/zsh-runtime/hostabi"
	"github.com/zshmod/zsh-runtime/hosttest"
	"github.com/zshmod/zsh-runtime/module"
)

// harness runs an extension module against the in-memory shell host,
// walking the same entry point sequence a real shell would: setup,
// features, enables, boot.
type harness struct {
	host     *hosttest.Host
	store    *module.Store
	features []string
}

func newHarness() *harness {
	h := hosttest.New()
	hostabi.Bind(h)
	for _, name := range []string{"precmd", "preexec", "chpwd", "periodic"} {
		h.DefineHook(name)
	}
	return &harness{
		host:  h,
		store: module.NewStore(greeter.New),
	}
}

func (hn *harness) load() error {
	if status := hn.store.Setup(nil); status != 0 {
		return fmt.Errorf("setup entry returned %d", status)
	}

	var out **byte
	if status := hn.store.Features(nil, &out); status != 0 {
		return fmt.Errorf("features entry returned %d", status)
	}
	hn.features = hostabi.ArgvStrings(out)

	var enables *int32
	if status := hn.store.Enables(nil, &enables); status != 0 {
		return fmt.Errorf("enables entry returned %d", status)
	}
	if status := hn.store.Boot(nil); status != 0 {
		return fmt.Errorf("boot entry returned %d", status)
	}
	return nil
}

func (hn *harness) unload() error {
	if status := hn.store.Cleanup(nil); status != 0 {
		return fmt.Errorf("cleanup entry returned %d", status)
	}
	if status := hn.store.Finish(nil); status != 0 {
		return fmt.Errorf("finish entry returned %d", status)
	}
	hostabi.Bind(nil)
	return nil
}

// leakReport summarizes the host allocator after unload. A nonzero
// outstanding count means the module dropped ownership of heap blocks.
func (hn *harness) leakReport() string {
	return fmt.Sprintf("allocs=%d frees=%d outstanding=%d bad-frees=%d",
		hn.host.AllocCount(), hn.host.FreeCount(),
		hn.host.Outstanding(), hn.host.BadFrees())
}
