package engine

import (
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/errors"
)

// PropertyAttribute flags control how a template property is defined on
// objects created from the template.
type PropertyAttribute int

const (
	None       PropertyAttribute = 0
	ReadOnly   PropertyAttribute = 1 << 0
	DontEnum   PropertyAttribute = 1 << 1
	DontDelete PropertyAttribute = 1 << 2
)

func (a PropertyAttribute) flags() (writable, configurable, enumerable goja.Flag) {
	return flag(a&ReadOnly == 0), flag(a&DontDelete == 0), flag(a&DontEnum == 0)
}

func flag(b bool) goja.Flag {
	if b {
		return goja.FLAG_TRUE
	}
	return goja.FLAG_FALSE
}

// ObjectTemplate is an ordered blueprint of properties. Contexts created
// from a template copy its shape; later changes to the template do not
// affect them.
type ObjectTemplate struct {
	iso      *Isolate
	entries  []templateEntry
	index    map[string]int
	disposed bool
}

type templateEntry struct {
	name   string
	value  goja.Value
	nested *ObjectTemplate
	attrs  PropertyAttribute
}

// NewObjectTemplate creates an empty template bound to iso.
func NewObjectTemplate(iso *Isolate) *ObjectTemplate {
	s := iso.enter(errors.PhaseTemplate)
	defer s.exit()

	return &ObjectTemplate{
		iso:   iso,
		index: make(map[string]int),
	}
}

// Set binds name to a primitive value. Binding an existing name replaces
// the entry in place and keeps its position.
func (t *ObjectTemplate) Set(name string, v *Value, attrs PropertyAttribute) {
	if v == nil {
		panic(errors.InvalidInput(errors.PhaseTemplate, "nil value"))
	}
	s := t.enter()
	defer s.exit()

	t.iso.checkIsolate(errors.PhaseTemplate, "Value", v.iso)
	if v.disposed {
		panic(errors.Disposed(errors.PhaseTemplate, "Value"))
	}
	if _, isObject := v.val.(*goja.Object); isObject {
		panic(errors.TypeMismatch(errors.PhaseTemplate, []string{name}, "Value", "primitive value"))
	}

	t.put(templateEntry{name: name, value: v.val, attrs: attrs})
}

// SetObjectTemplate binds name to a nested template; contexts get a fresh
// object shaped by it.
func (t *ObjectTemplate) SetObjectTemplate(name string, nested *ObjectTemplate, attrs PropertyAttribute) {
	if nested == nil {
		panic(errors.InvalidInput(errors.PhaseTemplate, "nil template"))
	}
	s := t.enter()
	defer s.exit()

	t.iso.checkIsolate(errors.PhaseTemplate, "ObjectTemplate", nested.iso)
	if nested.disposed {
		panic(errors.Disposed(errors.PhaseTemplate, "ObjectTemplate"))
	}

	t.put(templateEntry{name: name, nested: nested, attrs: attrs})
}

// Names returns the bound names in insertion order.
func (t *ObjectTemplate) Names() []string {
	s := t.enter()
	defer s.exit()

	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of bound names.
func (t *ObjectTemplate) Len() int {
	s := t.enter()
	defer s.exit()
	return len(t.entries)
}

// Dispose releases the caller's reference. Templates already nested into
// another template or applied to a context are unaffected.
func (t *ObjectTemplate) Dispose() {
	if t == nil {
		return
	}
	t.iso.mu.Lock()
	defer t.iso.mu.Unlock()
	t.disposed = true
}

func (t *ObjectTemplate) enter() *scope {
	s := t.iso.enter(errors.PhaseTemplate)
	if t.disposed {
		s.exit()
		panic(errors.Disposed(errors.PhaseTemplate, "ObjectTemplate"))
	}
	return s
}

func (t *ObjectTemplate) put(e templateEntry) {
	if i, ok := t.index[e.name]; ok {
		t.entries[i] = e
		return
	}
	t.index[e.name] = len(t.entries)
	t.entries = append(t.entries, e)
}

// apply defines the template's properties on obj. active holds the
// templates currently being applied so cycles are cut instead of recursing.
// Caller holds the execution lock.
func (t *ObjectTemplate) apply(rt *goja.Runtime, obj *goja.Object, path []string, active map[*ObjectTemplate]bool) {
	active[t] = true
	defer delete(active, t)

	for _, e := range t.entries {
		val := e.value
		if e.nested != nil {
			if active[e.nested] {
				Logger().Warn("skipping cyclic template property",
					zap.String("isolate", t.iso.id),
					zap.String("path", strings.Join(append(path, e.name), ".")))
				continue
			}
			child := rt.NewObject()
			e.nested.apply(rt, child, append(path, e.name), active)
			val = child
		}

		writable, configurable, enumerable := e.attrs.flags()
		if err := obj.DefineDataProperty(e.name, val, writable, configurable, enumerable); err != nil {
			Logger().Warn("define template property",
				zap.String("isolate", t.iso.id),
				zap.String("path", strings.Join(append(path, e.name), ".")),
				zap.Error(err))
		}
	}
}
