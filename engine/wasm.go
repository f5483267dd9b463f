package engine

import (
	"context"
	"sort"

	"github.com/dop251/goja"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// installWebAssembly defines a minimal WebAssembly namespace on the global
// object: the Module constructor with its exports/imports reflection, and
// validate. Modules are compiled by the isolate's wazero runtime and are
// never instantiated. Caller holds the execution lock.
func (c *Context) installWebAssembly() {
	rt := c.realm.rt

	ctor := rt.ToValue(func(call goja.ConstructorCall) *goja.Object {
		if call.NewTarget == nil {
			panic(rt.NewTypeError("WebAssembly.Module must be invoked with 'new'"))
		}
		buf, ok := bufferSource(call.Argument(0))
		if !ok {
			panic(rt.NewTypeError("WebAssembly.Module(): Argument 0 must be a buffer source"))
		}
		mod, err := c.iso.wasmRuntime().CompileModule(context.Background(), buf)
		if err != nil {
			panic(rt.NewTypeError("WebAssembly.Module(): %v", err))
		}
		c.registerModule(call.This, mod, len(buf))
		return nil
	}).(*goja.Object)

	proto := ctor.Get("prototype").ToObject(rt)
	if err := proto.DefineDataPropertySymbol(goja.SymToStringTag, rt.ToValue("WebAssembly.Module"),
		goja.FLAG_FALSE, goja.FLAG_TRUE, goja.FLAG_FALSE); err != nil {
		Logger().Warn("define WebAssembly.Module tag", zap.Error(err))
	}

	_ = ctor.Set("exports", func(call goja.FunctionCall) goja.Value {
		mod := c.moduleArg(call.Argument(0), "WebAssembly.Module.exports()")
		return rt.NewArray(moduleExports(rt, mod)...)
	})
	_ = ctor.Set("imports", func(call goja.FunctionCall) goja.Value {
		mod := c.moduleArg(call.Argument(0), "WebAssembly.Module.imports()")
		return rt.NewArray(moduleImports(rt, mod)...)
	})

	ns := rt.NewObject()
	_ = ns.Set("Module", ctor)
	_ = ns.Set("validate", func(call goja.FunctionCall) goja.Value {
		buf, ok := bufferSource(call.Argument(0))
		if !ok {
			panic(rt.NewTypeError("WebAssembly.validate(): Argument 0 must be a buffer source"))
		}
		mod, err := c.iso.wasmRuntime().CompileModule(context.Background(), buf)
		if err != nil {
			return rt.ToValue(false)
		}
		_ = mod.Close(context.Background())
		return rt.ToValue(true)
	})
	_ = ns.DefineDataPropertySymbol(goja.SymToStringTag, rt.ToValue("WebAssembly"),
		goja.FLAG_FALSE, goja.FLAG_TRUE, goja.FLAG_FALSE)

	_ = rt.GlobalObject().DefineDataProperty("WebAssembly", ns, goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_FALSE)
}

// registerModule ties a compiled module to the context's lifetime. goja
// exposes no reachability hook for script objects, so a module stays
// compiled and counted in ExternalMemory until the context is disposed,
// even after the script drops every reference to it.
func (c *Context) registerModule(obj *goja.Object, mod wazero.CompiledModule, size int) {
	if c.wasmModules == nil {
		c.wasmModules = make(map[*goja.Object]wazero.CompiledModule)
	}
	c.wasmModules[obj] = mod
	c.externalBytes += uint64(size)
}

func (c *Context) moduleArg(v goja.Value, fn string) wazero.CompiledModule {
	if obj, ok := v.(*goja.Object); ok {
		if mod, ok := c.wasmModules[obj]; ok {
			return mod
		}
	}
	panic(c.realm.rt.NewTypeError("%s: Argument 0 must be a WebAssembly.Module", fn))
}

// bufferSource extracts the bytes of an ArrayBuffer or ArrayBuffer view.
func bufferSource(v goja.Value) ([]byte, bool) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, false
	}
	switch b := obj.Export().(type) {
	case goja.ArrayBuffer:
		return b.Bytes(), true
	case []byte:
		return b, true
	}

	buffer, offset, length := obj.Get("buffer"), obj.Get("byteOffset"), obj.Get("byteLength")
	if buffer == nil || offset == nil || length == nil {
		return nil, false
	}
	ab, ok := buffer.Export().(goja.ArrayBuffer)
	if !ok {
		return nil, false
	}
	data := ab.Bytes()
	off, n := offset.ToInteger(), length.ToInteger()
	if off < 0 || n < 0 || off+n > int64(len(data)) {
		return nil, false
	}
	return data[off : off+n], true
}

func descriptor(rt *goja.Runtime, fields ...string) *goja.Object {
	obj := rt.NewObject()
	for i := 0; i+1 < len(fields); i += 2 {
		_ = obj.Set(fields[i], fields[i+1])
	}
	return obj
}

func moduleExports(rt *goja.Runtime, mod wazero.CompiledModule) []any {
	type export struct{ name, kind string }
	var exports []export
	for name := range mod.ExportedFunctions() {
		exports = append(exports, export{name, "function"})
	}
	for name := range mod.ExportedMemories() {
		exports = append(exports, export{name, "memory"})
	}
	sort.Slice(exports, func(i, j int) bool { return exports[i].name < exports[j].name })

	out := make([]any, len(exports))
	for i, e := range exports {
		out[i] = descriptor(rt, "name", e.name, "kind", e.kind)
	}
	return out
}

func moduleImports(rt *goja.Runtime, mod wazero.CompiledModule) []any {
	var out []any
	for _, fn := range mod.ImportedFunctions() {
		out = append(out, importDescriptor(rt, fn, "function"))
	}
	for _, mem := range mod.ImportedMemories() {
		out = append(out, importDescriptor(rt, mem, "memory"))
	}
	return out
}

// importer is implemented by api.FunctionDefinition and api.MemoryDefinition.
type importer interface {
	Import() (moduleName, name string, isImport bool)
}

func importDescriptor(rt *goja.Runtime, def importer, kind string) *goja.Object {
	module, name, _ := def.Import()
	return descriptor(rt, "module", module, "name", name, "kind", kind)
}

var (
	_ importer = api.FunctionDefinition(nil)
	_ importer = api.MemoryDefinition(nil)
)
