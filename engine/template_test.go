package engine

import (
	"reflect"
	"testing"

	"github.com/wippyai/js-runtime/errors"
)

func TestTemplate_GlobalValue(t *testing.T) {
	_, ctx := newTestContext(t, nil, func(iso *Isolate) *ObjectTemplate {
		tmpl := NewObjectTemplate(iso)
		v := NewValueInteger(iso, 42)
		defer v.Dispose()
		tmpl.Set("x", v, None)
		return tmpl
	})

	if got := mustRun(t, ctx, "x").Int32(); got != 42 {
		t.Errorf("x = %d, want 42", got)
	}
}

func TestTemplate_Attributes(t *testing.T) {
	tests := []struct {
		name  string
		attrs PropertyAttribute
		probe string
		want  bool
	}{
		{"writable by default", None, "x = 7; x === 7", true},
		{"read-only", ReadOnly, "x = 7; x === 42", true},
		{"enumerable by default", None, "Object.keys(globalThis).indexOf('x') >= 0", true},
		{"dont-enum", DontEnum, "Object.keys(globalThis).indexOf('x') >= 0", false},
		{"deletable by default", None, "delete globalThis.x", true},
		{"dont-delete", DontDelete, "delete globalThis.x", false},
		{"combined", ReadOnly | DontEnum | DontDelete, "x = 1; !delete globalThis.x && x === 42 && !Object.keys(globalThis).includes('x')", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ctx := newTestContext(t, nil, func(iso *Isolate) *ObjectTemplate {
				tmpl := NewObjectTemplate(iso)
				tmpl.Set("x", NewValueInteger(iso, 42), tt.attrs)
				return tmpl
			})
			if got := mustRun(t, ctx, tt.probe).Boolean(); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.probe, got, tt.want)
			}
		})
	}
}

func TestTemplate_Nested(t *testing.T) {
	_, ctx := newTestContext(t, nil, func(iso *Isolate) *ObjectTemplate {
		inner := NewObjectTemplate(iso)
		inner.Set("name", NewValueString(iso, "svc"), ReadOnly)
		inner.Set("port", NewValueInteger(iso, 8080), None)

		outer := NewObjectTemplate(iso)
		outer.SetObjectTemplate("config", inner, None)
		inner.Dispose()
		return outer
	})

	if got := mustRun(t, ctx, "config.name + ':' + config.port").String(); got != "svc:8080" {
		t.Errorf("got %q", got)
	}
	if !mustRun(t, ctx, "config").IsObject() {
		t.Error("nested template should produce an object")
	}
}

func TestTemplate_InsertionOrderAndOverwrite(t *testing.T) {
	iso := NewIsolate()
	defer iso.Dispose()

	tmpl := NewObjectTemplate(iso)
	defer tmpl.Dispose()
	tmpl.Set("a", NewValueInteger(iso, 1), None)
	tmpl.Set("b", NewValueInteger(iso, 2), None)
	tmpl.Set("a", NewValueInteger(iso, 3), None)

	if got := tmpl.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
	if tmpl.Len() != 2 {
		t.Errorf("Len() = %d", tmpl.Len())
	}

	ctx := NewContext(iso, tmpl)
	defer ctx.Dispose()
	if got := mustRun(t, ctx, "Object.keys(globalThis).filter(k => k === 'a' || k === 'b').join()").String(); got != "a,b" {
		t.Errorf("key order = %q", got)
	}
	if got := mustRun(t, ctx, "a").Int32(); got != 3 {
		t.Errorf("a = %d, want 3", got)
	}
}

func TestTemplate_ShapeCopiedAtCreation(t *testing.T) {
	iso := NewIsolate()
	defer iso.Dispose()

	tmpl := NewObjectTemplate(iso)
	defer tmpl.Dispose()
	tmpl.Set("x", NewValueInteger(iso, 1), None)

	ctx := NewContext(iso, tmpl)
	defer ctx.Dispose()
	tmpl.Set("x", NewValueInteger(iso, 2), None)
	tmpl.Set("y", NewValueInteger(iso, 3), None)

	if got := mustRun(t, ctx, "x").Int32(); got != 1 {
		t.Errorf("x = %d, want 1", got)
	}
	if got := mustRun(t, ctx, "typeof y").String(); got != "undefined" {
		t.Errorf("typeof y = %q", got)
	}
}

func TestTemplate_Cycle(t *testing.T) {
	iso := NewIsolate()
	defer iso.Dispose()

	a := NewObjectTemplate(iso)
	b := NewObjectTemplate(iso)
	defer a.Dispose()
	defer b.Dispose()

	b.Set("leaf", NewValueBoolean(iso, 1), None)
	b.SetObjectTemplate("back", a, None)
	a.SetObjectTemplate("child", b, None)
	a.SetObjectTemplate("loop", a, None)

	ctx := NewContext(iso, a)
	defer ctx.Dispose()

	if got := mustRun(t, ctx, "typeof loop + ',' + typeof child.back + ',' + child.leaf").String(); got != "undefined,undefined,true" {
		t.Errorf("got %q", got)
	}
}

func TestTemplate_Misuse(t *testing.T) {
	iso := NewIsolate()
	defer iso.Dispose()
	other := NewIsolate()
	defer other.Dispose()

	tmpl := NewObjectTemplate(iso)
	defer tmpl.Dispose()

	t.Run("object value", func(t *testing.T) {
		ctx := NewContext(iso, nil)
		defer ctx.Dispose()
		obj := mustRun(t, ctx, "({})")
		expectPanic(t, errors.TypeMismatch(errors.PhaseTemplate, nil, "Value", ""), func() {
			tmpl.Set("o", obj, None)
		})
	})

	t.Run("foreign value", func(t *testing.T) {
		v := NewValueInteger(other, 1)
		defer v.Dispose()
		expectPanic(t, errors.IsolateMismatch(errors.PhaseTemplate, "Value", "", ""), func() {
			tmpl.Set("v", v, None)
		})
	})

	t.Run("foreign template", func(t *testing.T) {
		foreign := NewObjectTemplate(other)
		defer foreign.Dispose()
		expectPanic(t, errors.IsolateMismatch(errors.PhaseTemplate, "ObjectTemplate", "", ""), func() {
			tmpl.SetObjectTemplate("t", foreign, None)
		})
		expectPanic(t, errors.IsolateMismatch(errors.PhaseContext, "ObjectTemplate", "", ""), func() {
			NewContext(iso, foreign)
		})
	})

	t.Run("disposed template", func(t *testing.T) {
		gone := NewObjectTemplate(iso)
		gone.Dispose()
		gone.Dispose()
		expectPanic(t, errors.Disposed(errors.PhaseTemplate, "ObjectTemplate"), func() {
			gone.Set("x", NewValueInteger(iso, 1), None)
		})
	})

	if tmpl.Len() != 0 {
		t.Errorf("failed Set calls should not add entries, Len() = %d", tmpl.Len())
	}
}
