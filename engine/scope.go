package engine

import (
	"github.com/wippyai/js-runtime/errors"
)

// scope is one entry into an isolate: the execution lock plus the disposed
// check made under it. The lock is not reentrant.
type scope struct {
	iso   *Isolate
	phase errors.Phase
}

// enter acquires the isolate for the calling goroutine. It panics with a
// disposed error when the isolate is gone; the lock is not held in that case.
func (iso *Isolate) enter(phase errors.Phase) *scope {
	if iso == nil {
		panic(errors.InvalidInput(phase, "nil isolate"))
	}

	iso.mu.Lock()
	if iso.disposed {
		iso.mu.Unlock()
		panic(errors.Disposed(phase, "Isolate"))
	}
	debugf("enter isolate %s (%s)", iso.id, phase)
	return &scope{iso: iso, phase: phase}
}

// exit releases the lock.
func (s *scope) exit() {
	s.iso.mu.Unlock()
}

// realmFor picks the realm an accessor runs in: the owning context's realm
// when there is one, else the isolate scratch realm. A disposed context's
// realm stays usable for the values it produced; such a context counts as
// detached until those values are disposed.
func (s *scope) realmFor(ctx *Context) *realm {
	if ctx != nil {
		return ctx.realm
	}
	return s.iso.scratchRealm()
}
