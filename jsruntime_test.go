package jsruntime_test

import (
	"testing"

	jsruntime "github.com/wippyai/js-runtime"
	"github.com/wippyai/js-runtime/engine"
)

var (
	_ jsruntime.Disposer = (*engine.Isolate)(nil)
	_ jsruntime.Disposer = (*engine.Context)(nil)
	_ jsruntime.Disposer = (*engine.ObjectTemplate)(nil)
	_ jsruntime.Disposer = (*engine.Value)(nil)
)

func TestDisposer_ReverseOrder(t *testing.T) {
	if !engine.Initialized() {
		if err := engine.Init(); err != nil {
			t.Fatal(err)
		}
	}

	iso := engine.NewIsolate()
	ctx := engine.NewContext(iso, nil)
	rtn := ctx.RunScript("'owned'", "owned.js")
	if rtn.Error != nil {
		t.Fatal(rtn.Error)
	}

	owned := []jsruntime.Disposer{iso, ctx, rtn.Value}
	for i := len(owned) - 1; i >= 0; i-- {
		owned[i].Dispose()
	}
	// Disposing twice is a no-op.
	for _, d := range owned {
		d.Dispose()
	}
}
