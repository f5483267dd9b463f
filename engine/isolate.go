package engine

import (
	"context"
	"sync"

	"github.com/dop251/goja"
	"github.com/google/uuid"
	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/errors"
)

// Isolate is an independent engine environment. All calls against one
// isolate are serialized by its execution lock; distinct isolates never
// contend.
type Isolate struct {
	cfg Config
	id  string

	mu       sync.Mutex
	disposed bool

	scratch *realm
	wasm    wazero.Runtime

	contexts map[*Context]struct{}
	detached map[*Context]struct{}

	captureStack bool
	peakMalloced uint64

	term terminator
}

// NewIsolate creates an isolate with the default configuration.
func NewIsolate() *Isolate {
	return NewIsolateWithConfig(nil)
}

// NewIsolateWithConfig creates an isolate. Init must have been called.
func NewIsolateWithConfig(cfg *Config) *Isolate {
	mustBeInitialized(errors.PhaseIsolate)

	iso := &Isolate{
		cfg:      cfg.clone(),
		id:       uuid.NewString(),
		contexts: make(map[*Context]struct{}),
		detached: make(map[*Context]struct{}),
	}
	Logger().Debug("isolate created", zap.String("isolate", iso.id))
	return iso
}

// ID returns the isolate's unique identifier.
func (iso *Isolate) ID() string {
	if iso == nil {
		return ""
	}
	return iso.id
}

// Dispose releases the isolate. Contexts that are still alive become
// orphaned: using them afterwards panics. Calling Dispose on a nil or
// already disposed isolate does nothing.
func (iso *Isolate) Dispose() {
	if iso == nil {
		return
	}

	iso.mu.Lock()
	defer iso.mu.Unlock()

	if iso.disposed {
		return
	}
	iso.disposed = true

	orphaned := len(iso.contexts)
	for ctx := range iso.contexts {
		ctx.closeWasm()
	}
	iso.contexts = nil
	iso.detached = nil
	iso.scratch = nil

	if iso.wasm != nil {
		if err := iso.wasm.Close(context.Background()); err != nil {
			Logger().Warn("close wasm runtime", zap.String("isolate", iso.id), zap.Error(err))
		}
		iso.wasm = nil
	}

	Logger().Debug("isolate disposed",
		zap.String("isolate", iso.id),
		zap.Int("orphaned_contexts", orphaned))
}

// TerminateExecution requests that the script running in this isolate stop
// at the next safe point. It does not wait and does not take the execution
// lock, so it may be called from any goroutine while RunScript blocks. A
// request made while no script runs terminates the next RunScript.
func (iso *Isolate) TerminateExecution() {
	if iso == nil {
		return
	}
	iso.term.request()
	Logger().Debug("termination requested", zap.String("isolate", iso.id))
}

// IsExecutionTerminating reports whether a termination request is pending.
func (iso *Isolate) IsExecutionTerminating() bool {
	if iso == nil {
		return false
	}
	return iso.term.isPending()
}

// CancelTerminateExecution withdraws a pending termination request.
func (iso *Isolate) CancelTerminateExecution() {
	if iso == nil {
		return
	}
	iso.term.cancel()
}

// scratchRealm returns the context-free realm, creating it on first use.
// Caller holds the execution lock.
func (iso *Isolate) scratchRealm() *realm {
	if iso.scratch == nil {
		iso.scratch = newRealm(&iso.cfg, &iso.term)
	}
	return iso.scratch
}

// wasmRuntime returns the isolate's wazero runtime, creating it on first
// use. Caller holds the execution lock.
func (iso *Isolate) wasmRuntime() wazero.Runtime {
	if iso.wasm == nil {
		runtimeCfg := wazero.NewRuntimeConfig()
		if iso.cfg.WasmMemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(iso.cfg.WasmMemoryLimitPages)
		}
		iso.wasm = wazero.NewRuntimeWithConfig(context.Background(), runtimeCfg)
	}
	return iso.wasm
}

// checkIsolate panics when other belongs to a different isolate.
func (iso *Isolate) checkIsolate(phase errors.Phase, handle string, other *Isolate) {
	if other != iso {
		panic(errors.IsolateMismatch(phase, handle, iso.ID(), other.ID()))
	}
}

// interruptSignal is the value passed to goja's Interrupt for termination.
type interruptSignal struct{}

func (interruptSignal) String() string { return terminatedMessage }

// terminator tracks termination requests. It is guarded by its own mutex so
// requests never wait for the execution lock.
type terminator struct {
	mu      sync.Mutex
	running *goja.Runtime
	pending bool
}

func (t *terminator) request() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = true
	if t.running != nil {
		t.running.Interrupt(interruptSignal{})
	}
}

func (t *terminator) cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = false
	if t.running != nil {
		t.running.ClearInterrupt()
	}
}

func (t *terminator) isPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// begin marks rt as running. A pending request interrupts it immediately.
func (t *terminator) begin(rt *goja.Runtime) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = rt
	if t.pending {
		rt.Interrupt(interruptSignal{})
	}
}

// end clears the running runtime. A request is consumed only by the run it
// actually interrupted; one that arrived too late stays pending for the next.
func (t *terminator) end(rt *goja.Runtime, interrupted bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = nil
	rt.ClearInterrupt()
	if interrupted {
		t.pending = false
	}
}
