package capi

import (
	"os"
	"testing"

	"github.com/wippyai/js-runtime/resource"
)

func TestMain(m *testing.M) {
	if err := Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newIsolate returns an isolate handle disposed when the test ends. Boxes
// registered later with cleanup are released first.
func newIsolate(t *testing.T) resource.Handle {
	t.Helper()
	h := NewIsolate()
	if h == 0 {
		t.Fatal("NewIsolate returned the null handle")
	}
	t.Cleanup(func() {
		if err := IsolateDispose(h); err != nil {
			t.Errorf("IsolateDispose: %v", err)
		}
	})
	return h
}

func newContext(t *testing.T, iso, tmpl resource.Handle) resource.Handle {
	t.Helper()
	h := NewContext(iso, tmpl)
	if h == 0 {
		t.Fatal("NewContext returned the null handle")
	}
	t.Cleanup(func() { ContextDispose(h) })
	return h
}

func run(t *testing.T, ctx resource.Handle, src string) resource.Handle {
	t.Helper()
	rtn := RunScript(ctx, src, "test.js")
	if rtn.Error != nil {
		t.Fatalf("RunScript(%q): %+v", src, rtn.Error)
	}
	if rtn.Value == 0 {
		t.Fatalf("RunScript(%q) returned the null handle", src)
	}
	t.Cleanup(func() { ValueDispose(rtn.Value) })
	return rtn.Value
}
