package engine

import (
	"reflect"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/errors"
)

// helpersSource builds the per-realm helper functions used by value
// accessors. Every builtin is captured when the realm is created, so later
// monkey-patching by scripts cannot reach the helpers. classify and detail
// only read data properties and internal slots; they never invoke getters,
// proxy traps or user-defined conversions.
const helpersSource = `(function () {
  "use strict";
  const NONE = {};
  const apply = Reflect.apply;
  const ownDesc = Object.getOwnPropertyDescriptor;
  const getProto = Object.getPrototypeOf;
  const hasOwn = Object.prototype.hasOwnProperty;
  const isArray = Array.isArray;
  const objToString = Object.prototype.toString;
  const errToString = Error.prototype.toString;
  const fnToString = Function.prototype.toString;
  const strSlice = String.prototype.slice;
  const tagKey = Symbol.toStringTag;
  const hasBigInt = typeof BigInt === "function";
  const BigIntCtor = hasBigInt ? BigInt : undefined;
  const bigZero = hasBigInt ? BigInt(0) : 0;
  const maxDepth = 64;

  function getter(proto, name) {
    if (proto === undefined || proto === null) return undefined;
    const d = ownDesc(proto, name);
    return d !== undefined && typeof d.get === "function" ? d.get : undefined;
  }
  function method(proto, name) {
    if (proto === undefined || proto === null) return undefined;
    const d = ownDesc(proto, name);
    return d !== undefined && typeof d.value === "function" ? d.value : undefined;
  }
  function ctorProto(name) {
    const c = globalThis[name];
    return typeof c === "function" ? c.prototype : undefined;
  }
  function attempt(fn, v, args) {
    if (fn === undefined) return NONE;
    try {
      return apply(fn, v, args);
    } catch (e) {
      return NONE;
    }
  }
  function isObjectLike(o) {
    return o !== null && (typeof o === "object" || typeof o === "function");
  }
  function dataProp(o, key) {
    for (let i = 0; i < maxDepth && isObjectLike(o); i++) {
      const d = ownDesc(o, key);
      if (d !== undefined) {
        return apply(hasOwn, d, ["value"]) ? d.value : undefined;
      }
      o = getProto(o);
    }
    return undefined;
  }
  // safeTag returns the @@toStringTag data value, "" when the tag is an
  // accessor, or undefined when no tag exists on the chain.
  function safeTag(o) {
    for (let i = 0; i < maxDepth && isObjectLike(o); i++) {
      const d = ownDesc(o, tagKey);
      if (d !== undefined) {
        if (!apply(hasOwn, d, ["value"])) return "";
        return typeof d.value === "string" ? d.value : "";
      }
      o = getProto(o);
    }
    return undefined;
  }

  const dateTime = method(Date.prototype, "getTime");
  const regexpGlobal = getter(RegExp.prototype, "global");
  const numberValueOf = method(Number.prototype, "valueOf");
  const stringValueOf = method(String.prototype, "valueOf");
  const symbolValueOf = method(Symbol.prototype, "valueOf");
  const bigintValueOf = method(ctorProto("BigInt"), "valueOf");
  const bigintToString = method(ctorProto("BigInt"), "toString");
  const symbolToString = method(Symbol.prototype, "toString");
  const mapSize = getter(Map.prototype, "size");
  const setSize = getter(Set.prototype, "size");
  const weakMapHas = method(WeakMap.prototype, "has");
  const weakSetHas = method(WeakSet.prototype, "has");
  const abByteLength = getter(ArrayBuffer.prototype, "byteLength");
  const sabByteLength = getter(ctorProto("SharedArrayBuffer"), "byteLength");
  const dvByteLength = getter(DataView.prototype, "byteLength");
  const typedArrayTag = getter(getProto(Uint8Array.prototype), tagKey);
  const probeKey = {};

  function classify(v) {
    const out = [];
    switch (typeof v) {
      case "undefined":
        out.push("Undefined");
        return out;
      case "boolean":
        out.push("Boolean", v ? "True" : "False");
        return out;
      case "string":
        out.push("String");
        return out;
      case "symbol":
        out.push("Symbol");
        return out;
      case "bigint":
        out.push("BigInt");
        return out;
      case "number": {
        out.push("Number");
        const negZero = v === 0 && 1 / v < 0;
        if ((v | 0) === v && !negZero) out.push("Int32");
        if ((v >>> 0) === v && !negZero) out.push("Uint32");
        return out;
      }
    }
    if (v === null) {
      out.push("Null");
      return out;
    }
    out.push("Object");
    const tag = safeTag(v);
    if (typeof v === "function") {
      out.push("Function");
      if (tag === "AsyncFunction" || tag === "AsyncGeneratorFunction") out.push("AsyncFunction");
      if (tag === "GeneratorFunction" || tag === "AsyncGeneratorFunction") out.push("GeneratorFunction");
      return out;
    }
    if (isArray(v)) out.push("Array");
    if (attempt(dateTime, v, []) !== NONE) out.push("Date");
    if (typeof attempt(regexpGlobal, v, []) === "boolean") out.push("RegExp");
    if (attempt(numberValueOf, v, []) !== NONE) out.push("NumberObject");
    if (attempt(stringValueOf, v, []) !== NONE) out.push("StringObject");
    if (attempt(symbolValueOf, v, []) !== NONE) out.push("SymbolObject");
    if (attempt(bigintValueOf, v, []) !== NONE) out.push("BigIntObject");
    if (attempt(mapSize, v, []) !== NONE) out.push("Map");
    if (attempt(setSize, v, []) !== NONE) out.push("Set");
    if (attempt(weakMapHas, v, [probeKey]) !== NONE) out.push("WeakMap");
    if (attempt(weakSetHas, v, [probeKey]) !== NONE) out.push("WeakSet");
    if (attempt(abByteLength, v, []) !== NONE) out.push("ArrayBuffer");
    if (attempt(sabByteLength, v, []) !== NONE) out.push("SharedArrayBuffer");
    if (attempt(dvByteLength, v, []) !== NONE) out.push("DataView", "ArrayBufferView");
    const elem = attempt(typedArrayTag, v, []);
    if (typeof elem === "string") out.push(elem, "TypedArray", "ArrayBufferView");
    if (tag === undefined) {
      const builtin = apply(objToString, v, []);
      if (builtin === "[object Arguments]") out.push("ArgumentsObject");
      if (builtin === "[object Error]") out.push("NativeError");
    }
    return out;
  }

  function truncate(s) {
    if (s.length <= 128) return s;
    return apply(strSlice, s, [0, 111]) + "...<omitted>..." + apply(strSlice, s, [s.length - 2]);
  }

  function detail(v) {
    switch (typeof v) {
      case "string":
        return v;
      case "number":
      case "boolean":
      case "undefined":
        return "" + v;
      case "symbol":
        return apply(symbolToString, v, []);
      case "bigint":
        return apply(bigintToString, v, []);
      case "function": {
        const src = attempt(fnToString, v, []);
        return typeof src === "string" ? truncate(src) : "[object Function]";
      }
    }
    if (v === null) return "null";
    const tag = safeTag(v);
    const builtin = tag === undefined ? apply(objToString, v, []) : undefined;
    const toStr = dataProp(v, "toString");
    if (builtin === "[object Error]" || toStr === errToString) {
      const name = dataProp(v, "name");
      const msg = dataProp(v, "message");
      const n = typeof name === "string" ? name : "Error";
      const m = typeof msg === "string" ? msg : "";
      if (n === "") return m;
      if (m === "") return n;
      return n + ": " + m;
    }
    if (toStr === objToString) {
      const ctor = dataProp(v, "constructor");
      if (typeof ctor === "function") {
        const n = dataProp(ctor, "name");
        if (typeof n === "string" && n !== "") return "#<" + n + ">";
      }
    }
    if (builtin !== undefined) return builtin;
    return "[object " + (tag === "" ? "Object" : tag) + "]";
  }

  function toStr(v) {
    return ` + "`${v}`" + `;
  }

  function toNumber(v) {
    return +v;
  }

  function bigintHex(v) {
    if (!hasBigInt) throw new TypeError("BigInt is not supported");
    if (typeof v === "number") throw new TypeError("Cannot convert " + v + " to a BigInt");
    const b = BigIntCtor(v);
    if (b < bigZero) return "-" + apply(bigintToString, -b, [16]);
    return apply(bigintToString, b, [16]);
  }

  function bigintFromHex(neg, hex) {
    if (!hasBigInt) throw new TypeError("BigInt is not supported");
    const b = BigIntCtor("0x" + hex);
    return neg ? -b : b;
  }

  return { classify, detail, toStr, toNumber, bigintHex, bigintFromHex };
})()`

var helpersProgram = goja.MustCompile("<js-runtime>", helpersSource, true)

var typeProxy = reflect.TypeOf(goja.Proxy{})

// realm is one goja runtime plus the helper functions installed in it.
// Contexts each own a realm; isolates keep a scratch realm for values that
// were created without a context.
type realm struct {
	rt            *goja.Runtime
	term          *terminator
	classify      goja.Callable
	detail        goja.Callable
	toStr         goja.Callable
	toNumber      goja.Callable
	bigintHex     goja.Callable
	bigintFromHex goja.Callable
}

func newRealm(cfg *Config, term *terminator) *realm {
	rt := goja.New()
	if cfg.MaxCallStackSize > 0 {
		rt.SetMaxCallStackSize(cfg.MaxCallStackSize)
	}

	res, err := rt.RunProgram(helpersProgram)
	if err != nil {
		panic(errors.Wrap(errors.PhaseContext, errors.KindInvalidData, err, "install realm helpers"))
	}
	obj := res.ToObject(rt)

	return &realm{
		rt:            rt,
		term:          term,
		classify:      helper(obj, "classify"),
		detail:        helper(obj, "detail"),
		toStr:         helper(obj, "toStr"),
		toNumber:      helper(obj, "toNumber"),
		bigintHex:     helper(obj, "bigintHex"),
		bigintFromHex: helper(obj, "bigintFromHex"),
	}
}

func helper(obj *goja.Object, name string) goja.Callable {
	fn, ok := goja.AssertFunction(obj.Get(name))
	if !ok {
		panic(errors.NotFound(errors.PhaseContext, "realm helper", name))
	}
	return fn
}

// call invokes a helper and turns Go panics raised by the engine into
// errors, so accessors never panic across the boundary.
func (r *realm) call(fn goja.Callable, args ...goja.Value) (res goja.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.New(errors.PhaseValue, errors.KindInvalidData).
				Value(p).
				Detail("engine panic: %v", p).
				Build()
		}
	}()
	return fn(goja.Undefined(), args...)
}

// callUser invokes a helper that may run user conversions. The runtime is
// registered with the terminator for the duration, so TerminateExecution
// can interrupt a conversion that never returns.
func (r *realm) callUser(fn goja.Callable, args ...goja.Value) (goja.Value, error) {
	r.term.begin(r.rt)
	res, err := r.call(fn, args...)
	_, interrupted := err.(*goja.InterruptedError)
	r.term.end(r.rt, interrupted)
	return res, err
}

var typePromise = reflect.TypeOf((*goja.Promise)(nil))

// internalKinds maps the Go types goja uses for object internal slots to
// predicates that a user-writable @@toStringTag must not decide. goja
// reports "Object" from ClassName for all of them.
var internalKinds = map[string]Kind{
	"*goja.mapIterObject":   KindMapIterator,
	"*goja.setIterObject":   KindSetIterator,
	"*goja.generatorObject": KindGeneratorObject,
}

// internalKind classifies obj by its engine-side implementation.
func internalKind(obj *goja.Object) Kind {
	if obj.ExportType() == typePromise {
		return KindPromise
	}
	impl := reflect.ValueOf(obj).Elem().FieldByName("self")
	if !impl.IsValid() || impl.IsNil() {
		return 0
	}
	return internalKinds[impl.Elem().Type().String()]
}

// kindOf computes the predicate set for v.
func (r *realm) kindOf(v goja.Value) Kind {
	if obj, ok := v.(*goja.Object); ok && obj.ExportType() == typeProxy {
		k := KindObject | KindProxy
		if _, callable := goja.AssertFunction(v); callable {
			k |= KindFunction
		}
		return k
	}

	res, err := r.call(r.classify, v)
	if err != nil {
		Logger().Warn("value classification failed", zap.Error(err))
		return 0
	}

	tags, _ := res.Export().([]any)
	var k Kind
	for _, t := range tags {
		name, _ := t.(string)
		k |= kindByName[name]
	}
	if obj, ok := v.(*goja.Object); ok {
		k |= internalKind(obj)
	}
	return k
}
