package capi

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/errors"
	"github.com/wippyai/js-runtime/resource"
)

// Type tags of the handle table.
const (
	TypeIsolate resource.TypeID = iota + 1
	TypeContext
	TypeObjectTemplate
	TypeValue
)

// TypeName returns the box name for a type tag.
func TypeName(id resource.TypeID) string {
	switch id {
	case TypeIsolate:
		return "Isolate"
	case TypeContext:
		return "Context"
	case TypeObjectTemplate:
		return "ObjectTemplate"
	case TypeValue:
		return "Value"
	default:
		return "unknown"
	}
}

var (
	handles   = resource.NewTable()
	isolates  = resource.NewTyped[*isolateBox](handles, TypeIsolate)
	contexts  = resource.NewTyped[*contextBox](handles, TypeContext)
	templates = resource.NewTyped[*templateBox](handles, TypeObjectTemplate)
	values    = resource.NewTyped[*valueBox](handles, TypeValue)
)

// Subscribe registers an observer for handle lifecycle events.
func Subscribe(o resource.Observer) {
	handles.Subscribe(o)
}

// Unsubscribe removes an observer registered with Subscribe.
func Unsubscribe(o resource.Observer) {
	handles.Unsubscribe(o)
}

// LiveHandles returns the number of live handles per type tag.
func LiveHandles() map[resource.TypeID]int {
	counts := make(map[resource.TypeID]int, 4)
	handles.Each(func(_ resource.Handle, id resource.TypeID, _ any) bool {
		counts[id]++
		return true
	})
	return counts
}

type isolateBox struct {
	iso *engine.Isolate
}

func (b *isolateBox) Drop() { b.iso.Dispose() }

// Dependent boxes hold a borrow of their isolate handle, returned on drop.

type contextBox struct {
	ctx   *engine.Context
	owner resource.Handle
}

func (b *contextBox) Drop() {
	b.ctx.Dispose()
	handles.ReturnBorrow(b.owner)
}

type templateBox struct {
	tmpl  *engine.ObjectTemplate
	owner resource.Handle
}

func (b *templateBox) Drop() {
	b.tmpl.Dispose()
	handles.ReturnBorrow(b.owner)
}

type valueBox struct {
	val   *engine.Value
	owner resource.Handle
}

func (b *valueBox) Drop() {
	b.val.Dispose()
	handles.ReturnBorrow(b.owner)
}

func invalidHandle(id resource.TypeID, h resource.Handle) *errors.Error {
	return errors.InvalidHandle(errors.PhaseHandle, TypeName(id), uint32(h))
}

func lookup[T any](view *resource.Typed[T], h resource.Handle) (T, error) {
	b, ok := view.Get(h)
	if !ok {
		var zero T
		return zero, invalidHandle(view.TypeID(), h)
	}
	return b, nil
}

// borrowIsolate pins an isolate handle for a dependent that is about to
// be created. The caller returns the borrow if creation fails.
func borrowIsolate(h resource.Handle) (*engine.Isolate, error) {
	b, err := lookup(isolates, h)
	if err != nil {
		return nil, err
	}
	if !handles.Borrow(h) {
		return nil, invalidHandle(TypeIsolate, h)
	}
	return b.iso, nil
}

// withIsolate builds a dependent box while holding a borrow of the isolate
// handle and inserts it under id. A panicking build releases the borrow
// before the panic continues.
func withIsolate(isoHandle resource.Handle, op string, id resource.TypeID, build func(*engine.Isolate) resource.Dropper) resource.Handle {
	iso, err := borrowIsolate(isoHandle)
	if err != nil {
		logFailure(op, err)
		return 0
	}

	built := false
	defer func() {
		if !built {
			handles.ReturnBorrow(isoHandle)
		}
	}()
	box := build(iso)
	built = true
	return adopt(id, box)
}

// adopt inserts a dependent box. When the table refuses the entry the box
// is dropped right away, which releases its borrow.
func adopt(id resource.TypeID, box resource.Dropper) resource.Handle {
	h := handles.Insert(id, box)
	if h == 0 {
		box.Drop()
		engine.Logger().Warn("handle table refused entry", zap.String("type", TypeName(id)))
	}
	return h
}

// release removes h from its view. The null handle is a no-op.
func release[T any](view *resource.Typed[T], h resource.Handle) error {
	if h == 0 {
		return nil
	}
	if _, err := view.Remove(h); err != nil {
		name := TypeName(view.TypeID())
		if stderrors.Is(err, resource.ErrOutstandingBorrow) {
			return errors.OutstandingBorrow(errors.PhaseHandle, name, err)
		}
		return invalidHandle(view.TypeID(), h)
	}
	return nil
}

// recoverInto converts a structured engine panic into an error. Other
// panics propagate.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		e, ok := r.(*errors.Error)
		if !ok {
			panic(r)
		}
		*err = e
	}
}

// recoverLogged swallows a structured engine panic after logging it, for
// functions whose only failure signal is a zero result.
func recoverLogged(op string) {
	if r := recover(); r != nil {
		e, ok := r.(*errors.Error)
		if !ok {
			panic(r)
		}
		engine.Logger().Warn("capi call failed", zap.String("op", op), zap.Error(e))
	}
}

func logFailure(op string, err error) {
	engine.Logger().Warn("capi call failed", zap.String("op", op), zap.Error(err))
}
