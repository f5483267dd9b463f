package engine

import (
	"strings"
	"testing"
)

// exportingModule exports a single function "f" with no parameters.
const exportingModule = "[0,97,115,109,1,0,0,0, 1,4,1,96,0,0, 3,2,1,0, 7,5,1,1,102,0,0, 10,4,1,2,0,11]"

// importingModule imports a function "g" from module "env".
const importingModule = "[0,97,115,109,1,0,0,0, 1,4,1,96,0,0, 2,9,1,3,101,110,118,1,103,0,0]"

func wasmContext(t *testing.T) (*Isolate, *Context) {
	t.Helper()
	return newTestContext(t, &Config{EnableWebAssembly: true}, nil)
}

func TestWasm_Module(t *testing.T) {
	iso, ctx := wasmContext(t)

	mod := mustRun(t, ctx, "var m = new WebAssembly.Module(new Uint8Array("+exportingModule+")); m")
	if !mod.IsWasmModuleObject() || !mod.IsObject() {
		t.Fatalf("Kind() = %v, want WasmModuleObject", mod.Kind())
	}
	if got := mustRun(t, ctx, "Object.prototype.toString.call(m)").String(); got != "[object WebAssembly.Module]" {
		t.Errorf("toString tag = %q", got)
	}

	exports := mustRun(t, ctx, "WebAssembly.Module.exports(m).map(e => e.name + ':' + e.kind).join()").String()
	if exports != "f:function" {
		t.Errorf("exports = %q", exports)
	}
	if got := mustRun(t, ctx, "WebAssembly.Module.imports(m).length").Int32(); got != 0 {
		t.Errorf("imports length = %d", got)
	}

	if got := iso.GetHeapStatistics().ExternalMemory; got == 0 {
		t.Error("compiled module bytes should count as external memory")
	}
	if mustRun(t, ctx, "({})").IsWasmModuleObject() {
		t.Error("plain object reported as a wasm module")
	}
}

func TestWasm_ModuleFromArrayBuffer(t *testing.T) {
	_, ctx := wasmContext(t)

	src := "var m = new WebAssembly.Module(new Uint8Array(" + importingModule + ").buffer);" +
		"WebAssembly.Module.imports(m).map(i => i.module + '.' + i.name + ':' + i.kind).join()"
	if got := mustRun(t, ctx, src).String(); got != "env.g:function" {
		t.Errorf("imports = %q", got)
	}
}

func TestWasm_Validate(t *testing.T) {
	_, ctx := wasmContext(t)

	tests := []struct {
		bytes string
		want  bool
	}{
		{exportingModule, true},
		{importingModule, true},
		{"[0,97,115,109,1,0,0,0]", true},
		{"[1,2,3,4]", false},
		{"[0,97,115,109,1,0,0,0, 10,4,1,2,0]", false},
	}
	for _, tt := range tests {
		if got := mustRun(t, ctx, "WebAssembly.validate(new Uint8Array("+tt.bytes+"))").Boolean(); got != tt.want {
			t.Errorf("validate(%s) = %v, want %v", tt.bytes, got, tt.want)
		}
	}
}

func TestWasm_Errors(t *testing.T) {
	_, ctx := wasmContext(t)

	tests := []struct {
		src  string
		want string
	}{
		{"WebAssembly.Module(new Uint8Array(" + exportingModule + "))", "must be invoked with 'new'"},
		{"new WebAssembly.Module('nope')", "buffer source"},
		{"new WebAssembly.Module(new Uint8Array([1, 2, 3, 4]))", "WebAssembly.Module()"},
		{"WebAssembly.Module.exports({})", "must be a WebAssembly.Module"},
		{"WebAssembly.validate(42)", "buffer source"},
	}
	for _, tt := range tests {
		rtn := ctx.RunScript(tt.src, "wasm.js")
		if rtn.Error == nil {
			t.Errorf("%s: expected an error", tt.src)
			continue
		}
		if !strings.HasPrefix(rtn.Error.Msg, "TypeError") || !strings.Contains(rtn.Error.Msg, tt.want) {
			t.Errorf("%s: Msg = %q, want TypeError containing %q", tt.src, rtn.Error.Msg, tt.want)
		}
		if rtn.Error.Kind != ErrorKindRuntime {
			t.Errorf("%s: Kind = %v", tt.src, rtn.Error.Kind)
		}
	}
}

func TestWasm_Disabled(t *testing.T) {
	_, ctx := newTestContext(t, nil, nil)

	if got := mustRun(t, ctx, "typeof WebAssembly").String(); got != "undefined" {
		t.Errorf("typeof WebAssembly = %q", got)
	}
}

func TestWasm_ContextDisposeReleasesModules(t *testing.T) {
	iso := NewIsolateWithConfig(&Config{EnableWebAssembly: true})
	defer iso.Dispose()

	ctx := NewContext(iso, nil)
	rtn := ctx.RunScript("new WebAssembly.Module(new Uint8Array("+exportingModule+"))", "mod.js")
	if rtn.Error != nil {
		t.Fatal(rtn.Error)
	}
	rtn.Value.Dispose()
	ctx.Dispose()

	if got := iso.GetHeapStatistics().ExternalMemory; got != 0 {
		t.Errorf("ExternalMemory = %d after dispose", got)
	}
}

func TestWasm_ModulesLiveUntilContextDispose(t *testing.T) {
	iso := NewIsolateWithConfig(&Config{EnableWebAssembly: true})
	defer iso.Dispose()

	ctx := NewContext(iso, nil)
	run := func() {
		rtn := ctx.RunScript("new WebAssembly.Module(new Uint8Array("+exportingModule+")); 0", "mod.js")
		if rtn.Error != nil {
			t.Fatal(rtn.Error)
		}
		rtn.Value.Dispose()
	}

	run()
	one := iso.GetHeapStatistics().ExternalMemory
	if one == 0 {
		t.Fatal("ExternalMemory = 0 after compiling a module")
	}
	run()
	if got := iso.GetHeapStatistics().ExternalMemory; got != 2*one {
		t.Errorf("ExternalMemory = %d with two unreferenced modules, want %d", got, 2*one)
	}

	ctx.Dispose()
	if got := iso.GetHeapStatistics().ExternalMemory; got != 0 {
		t.Errorf("ExternalMemory = %d after context dispose", got)
	}
}
