package engine

import (
	"context"
	"time"

	"github.com/dop251/goja"
	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/errors"
)

// Context is a realm bound to one isolate: its own global object and
// builtins, shaped at creation by an optional object template.
type Context struct {
	iso      *Isolate
	realm    *realm
	disposed bool

	// liveValues counts undisposed values produced in this context.
	liveValues int

	wasmModules   map[*goja.Object]wazero.CompiledModule
	externalBytes uint64
}

// NewContext creates a context in iso. The global object receives the
// properties of tmpl; a nil template leaves it empty. Creating a context
// turns on stack capture for uncaught exceptions in the isolate.
func NewContext(iso *Isolate, tmpl *ObjectTemplate) *Context {
	s := iso.enter(errors.PhaseContext)
	defer s.exit()

	if tmpl != nil {
		iso.checkIsolate(errors.PhaseContext, "ObjectTemplate", tmpl.iso)
		if tmpl.disposed {
			panic(errors.Disposed(errors.PhaseContext, "ObjectTemplate"))
		}
	}

	ctx := &Context{
		iso:   iso,
		realm: newRealm(&iso.cfg, &iso.term),
	}
	iso.captureStack = true

	if iso.cfg.EnableWebAssembly {
		ctx.installWebAssembly()
	}
	if tmpl != nil {
		tmpl.apply(ctx.realm.rt, ctx.realm.rt.GlobalObject(), nil, make(map[*ObjectTemplate]bool))
	}

	iso.contexts[ctx] = struct{}{}
	Logger().Debug("context created",
		zap.String("isolate", iso.id),
		zap.Int("contexts", len(iso.contexts)))
	return ctx
}

// Isolate returns the owning isolate.
func (c *Context) Isolate() *Isolate {
	return c.iso
}

// Global returns the context's global object.
func (c *Context) Global() *Value {
	s := c.enter(errors.PhaseContext)
	defer s.exit()
	return c.newValue(c.realm.rt.GlobalObject())
}

// RunScript compiles source, tagged with origin for diagnostics, and runs
// it in the global scope. The result carries either the completion value
// or an RtnError; script failures never panic.
func (c *Context) RunScript(source, origin string) RtnValue {
	start := time.Now()
	rtn := c.runScript(source, origin)

	if obs := c.iso.cfg.Observer; obs != nil {
		ev := RunEvent{
			IsolateID: c.iso.id,
			Origin:    origin,
			Duration:  time.Since(start),
		}
		if rtn.Error != nil {
			ev.Outcome = rtn.Error.Kind
		}
		obs.OnScriptRun(ev)
	}
	return rtn
}

func (c *Context) runScript(source, origin string) RtnValue {
	s := c.enter(errors.PhaseRun)
	defer s.exit()

	prg, rerr := compileScript(source, origin, c.iso.cfg.Strict)
	if rerr != nil {
		return RtnValue{Error: rerr}
	}

	rt := c.realm.rt
	c.iso.term.begin(rt)
	res, err := runProgram(rt, prg)
	_, interrupted := err.(*goja.InterruptedError)
	c.iso.term.end(rt, interrupted)

	if err != nil {
		rtn := translateError(err, interrupted, c.iso.captureStack)
		if rtn.Kind == ErrorKindInternal {
			Logger().Error("script run failed",
				zap.String("isolate", c.iso.id),
				zap.String("origin", origin),
				zap.Error(err))
		}
		return RtnValue{Error: rtn}
	}
	return RtnValue{Value: c.newValue(res)}
}

func runProgram(rt *goja.Runtime, prg *goja.Program) (res goja.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = &panicError{value: p}
		}
	}()
	return rt.RunProgram(prg)
}

// Dispose releases the context. Calling Dispose on a nil or already
// disposed context does nothing; so does disposing after the isolate.
func (c *Context) Dispose() {
	if c == nil {
		return
	}

	c.iso.mu.Lock()
	defer c.iso.mu.Unlock()

	if c.disposed {
		return
	}
	c.disposed = true
	c.closeWasm()

	if c.iso.disposed {
		return
	}
	delete(c.iso.contexts, c)
	if c.liveValues > 0 {
		c.iso.detached[c] = struct{}{}
	}
	Logger().Debug("context disposed",
		zap.String("isolate", c.iso.id),
		zap.Int("live_values", c.liveValues))
}

func (c *Context) enter(phase errors.Phase) *scope {
	s := c.iso.enter(phase)
	if c.disposed {
		s.exit()
		panic(errors.Disposed(phase, "Context"))
	}
	return s
}

// newValue boxes a value produced in this context. Caller holds the
// execution lock.
func (c *Context) newValue(v goja.Value) *Value {
	if v == nil {
		v = goja.Undefined()
	}
	c.liveValues++
	return &Value{iso: c.iso, ctx: c, val: v}
}

// releaseValue is called when a value produced here is disposed. Caller
// holds the execution lock.
func (c *Context) releaseValue() {
	c.liveValues--
	if c.disposed && c.liveValues == 0 && c.iso.detached != nil {
		delete(c.iso.detached, c)
	}
}

func (c *Context) closeWasm() {
	for obj, mod := range c.wasmModules {
		if err := mod.Close(context.Background()); err != nil {
			Logger().Warn("close wasm module", zap.String("isolate", c.iso.id), zap.Error(err))
		}
		delete(c.wasmModules, obj)
	}
	c.externalBytes = 0
}
