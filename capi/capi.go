package capi

import (
	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/errors"
	"github.com/wippyai/js-runtime/resource"
)

// RtnError is the plain-data script error.
type RtnError = engine.RtnError

// RtnValue carries either a value handle or an error, never both.
type RtnValue struct {
	Value resource.Handle
	Error *RtnError
}

// HeapStatistics is the heap snapshot returned by IsolationGetHeapStatistics.
type HeapStatistics = engine.HeapStatistics

// PropertyAttribute holds template property flags.
type PropertyAttribute = engine.PropertyAttribute

// Init bootstraps the engine. It must be called once before any isolate is
// created.
func Init() error {
	return engine.Init()
}

// Version returns the embedded engine's version string.
func Version() string {
	return engine.Version()
}

// NewIsolate creates an isolate with the default configuration.
func NewIsolate() resource.Handle {
	return NewIsolateWithConfig(nil)
}

// NewIsolateWithConfig creates an isolate. It returns 0 if the engine is
// not initialized.
func NewIsolateWithConfig(cfg *engine.Config) (h resource.Handle) {
	defer recoverLogged("NewIsolate")

	iso := engine.NewIsolateWithConfig(cfg)
	h = isolates.Insert(&isolateBox{iso: iso})
	if h == 0 {
		iso.Dispose()
	}
	return h
}

// IsolateDispose releases an isolate. It fails while contexts, templates
// or values of the isolate are still live. The null handle is a no-op.
func IsolateDispose(h resource.Handle) error {
	return release(isolates, h)
}

// IsolateTerminateExecution asks the script running on the isolate to
// stop. It does not block and may be called from any goroutine.
func IsolateTerminateExecution(h resource.Handle) {
	if b, ok := isolates.Get(h); ok {
		b.iso.TerminateExecution()
	}
}

// IsolateCancelTerminateExecution withdraws a termination request that no
// script has consumed yet.
func IsolateCancelTerminateExecution(h resource.Handle) {
	if b, ok := isolates.Get(h); ok {
		b.iso.CancelTerminateExecution()
	}
}

// IsolationGetHeapStatistics returns a heap snapshot of the isolate, or an
// all-zero snapshot for the null or an unknown handle.
func IsolationGetHeapStatistics(h resource.Handle) (hs HeapStatistics) {
	defer recoverLogged("IsolationGetHeapStatistics")

	b, ok := isolates.Get(h)
	if !ok {
		return HeapStatistics{}
	}
	return b.iso.GetHeapStatistics()
}

// NewObjectTemplate creates an empty template bound to the isolate.
func NewObjectTemplate(isoHandle resource.Handle) (h resource.Handle) {
	defer recoverLogged("NewObjectTemplate")

	return withIsolate(isoHandle, "NewObjectTemplate", TypeObjectTemplate, func(iso *engine.Isolate) resource.Dropper {
		return &templateBox{tmpl: engine.NewObjectTemplate(iso), owner: isoHandle}
	})
}

// ObjectTemplateDispose releases a template. Contexts already created from
// it are unaffected. The null handle is a no-op.
func ObjectTemplateDispose(h resource.Handle) error {
	return release(templates, h)
}

// ObjectTemplateSetValue sets a named primitive property on the template,
// overwriting an existing property of the same name.
func ObjectTemplateSetValue(tmplHandle resource.Handle, name string, valHandle resource.Handle, attrs PropertyAttribute) (err error) {
	defer recoverInto(&err)

	tb, err := lookup(templates, tmplHandle)
	if err != nil {
		return err
	}
	vb, err := lookup(values, valHandle)
	if err != nil {
		return err
	}
	tb.tmpl.Set(name, vb.val, attrs)
	return nil
}

// ObjectTemplateSetObjectTemplate sets a named property that becomes a
// nested object shaped by another template.
func ObjectTemplateSetObjectTemplate(tmplHandle resource.Handle, name string, nestedHandle resource.Handle, attrs PropertyAttribute) (err error) {
	defer recoverInto(&err)

	tb, err := lookup(templates, tmplHandle)
	if err != nil {
		return err
	}
	nb, err := lookup(templates, nestedHandle)
	if err != nil {
		return err
	}
	tb.tmpl.SetObjectTemplate(name, nb.tmpl, attrs)
	return nil
}

// NewContext creates a context whose global object is shaped by the
// template. A null template handle gives a default global.
func NewContext(isoHandle, tmplHandle resource.Handle) (h resource.Handle) {
	defer recoverLogged("NewContext")

	var tmpl *engine.ObjectTemplate
	if tmplHandle != 0 {
		tb, err := lookup(templates, tmplHandle)
		if err != nil {
			logFailure("NewContext", err)
			return 0
		}
		tmpl = tb.tmpl
	}

	return withIsolate(isoHandle, "NewContext", TypeContext, func(iso *engine.Isolate) resource.Dropper {
		return &contextBox{ctx: engine.NewContext(iso, tmpl), owner: isoHandle}
	})
}

// ContextDispose releases a context. Values it produced stay usable until
// they are disposed. The null handle is a no-op.
func ContextDispose(h resource.Handle) error {
	return release(contexts, h)
}

// RunScript compiles and runs source in the context. origin names the
// script in error locations.
func RunScript(ctxHandle resource.Handle, source, origin string) (rtn RtnValue) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*errors.Error)
			if !ok {
				panic(r)
			}
			rtn = RtnValue{Error: internalError(e)}
		}
	}()

	cb, err := lookup(contexts, ctxHandle)
	if err != nil {
		return RtnValue{Error: internalError(err)}
	}

	res := cb.ctx.RunScript(source, origin)
	if res.Error != nil {
		return RtnValue{Error: res.Error}
	}
	return RtnValue{Value: adoptValue(res.Value, cb.owner)}
}

func internalError(err error) *RtnError {
	return &RtnError{Msg: err.Error(), Kind: engine.ErrorKindInternal}
}

// adoptValue boxes v as a dependent of the isolate handle owner.
func adoptValue(v *engine.Value, owner resource.Handle) resource.Handle {
	if !handles.Borrow(owner) {
		v.Dispose()
		return 0
	}
	return adopt(TypeValue, &valueBox{val: v, owner: owner})
}

// IsolateID returns the engine identifier of the isolate, or "" for an
// unknown handle. It matches RunEvent.IsolateID.
func IsolateID(h resource.Handle) string {
	if b, ok := isolates.Get(h); ok {
		return b.iso.ID()
	}
	return ""
}
