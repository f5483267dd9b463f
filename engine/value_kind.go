package engine

import (
	"math/bits"
	"strings"
)

// Kind is the set of type predicates that hold for a value.
type Kind uint64

const (
	KindUndefined Kind = 1 << iota
	KindNull
	KindTrue
	KindFalse
	KindString
	KindSymbol
	KindFunction
	KindObject
	KindBigInt
	KindBoolean
	KindNumber
	KindExternal
	KindInt32
	KindUint32
	KindDate
	KindArgumentsObject
	KindBigIntObject
	KindNumberObject
	KindStringObject
	KindSymbolObject
	KindNativeError
	KindRegExp
	KindAsyncFunction
	KindGeneratorFunction
	KindGeneratorObject
	KindPromise
	KindMap
	KindSet
	KindMapIterator
	KindSetIterator
	KindWeakMap
	KindWeakSet
	KindArray
	KindArrayBuffer
	KindArrayBufferView
	KindTypedArray
	KindUint8Array
	KindUint8ClampedArray
	KindInt8Array
	KindUint16Array
	KindInt16Array
	KindUint32Array
	KindInt32Array
	KindFloat32Array
	KindFloat64Array
	KindBigInt64Array
	KindBigUint64Array
	KindDataView
	KindSharedArrayBuffer
	KindProxy
	KindWasmModuleObject
	KindModuleNamespaceObject
)

// Composite predicates.
const (
	KindNullOrUndefined = KindNull | KindUndefined
	KindName            = KindString | KindSymbol
)

var kindNames = [...]string{
	"Undefined", "Null", "True", "False", "String", "Symbol", "Function",
	"Object", "BigInt", "Boolean", "Number", "External", "Int32", "Uint32",
	"Date", "ArgumentsObject", "BigIntObject", "NumberObject", "StringObject",
	"SymbolObject", "NativeError", "RegExp", "AsyncFunction",
	"GeneratorFunction", "GeneratorObject", "Promise", "Map", "Set",
	"MapIterator", "SetIterator", "WeakMap", "WeakSet", "Array",
	"ArrayBuffer", "ArrayBufferView", "TypedArray", "Uint8Array",
	"Uint8ClampedArray", "Int8Array", "Uint16Array", "Int16Array",
	"Uint32Array", "Int32Array", "Float32Array", "Float64Array",
	"BigInt64Array", "BigUint64Array", "DataView", "SharedArrayBuffer",
	"Proxy", "WasmModuleObject", "ModuleNamespaceObject",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for i, name := range kindNames {
		m[name] = 1 << i
	}
	return m
}()

// Has reports whether every bit of mask is set in k.
func (k Kind) Has(mask Kind) bool {
	return mask != 0 && k&mask == mask
}

// Any reports whether at least one bit of mask is set in k.
func (k Kind) Any(mask Kind) bool {
	return k&mask != 0
}

// Names returns the predicate names set in k, in declaration order.
func (k Kind) Names() []string {
	names := make([]string, 0, bits.OnesCount64(uint64(k)))
	for i, name := range kindNames {
		if k&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return names
}

func (k Kind) String() string {
	if k == 0 {
		return "none"
	}
	return strings.Join(k.Names(), "|")
}

func (v *Value) IsUndefined() bool             { return v.Kind().Has(KindUndefined) }
func (v *Value) IsNull() bool                  { return v.Kind().Has(KindNull) }
func (v *Value) IsNullOrUndefined() bool       { return v.Kind().Any(KindNullOrUndefined) }
func (v *Value) IsTrue() bool                  { return v.Kind().Has(KindTrue) }
func (v *Value) IsFalse() bool                 { return v.Kind().Has(KindFalse) }
func (v *Value) IsName() bool                  { return v.Kind().Any(KindName) }
func (v *Value) IsString() bool                { return v.Kind().Has(KindString) }
func (v *Value) IsSymbol() bool                { return v.Kind().Has(KindSymbol) }
func (v *Value) IsFunction() bool              { return v.Kind().Has(KindFunction) }
func (v *Value) IsObject() bool                { return v.Kind().Has(KindObject) }
func (v *Value) IsBigInt() bool                { return v.Kind().Has(KindBigInt) }
func (v *Value) IsBoolean() bool               { return v.Kind().Has(KindBoolean) }
func (v *Value) IsNumber() bool                { return v.Kind().Has(KindNumber) }
func (v *Value) IsExternal() bool              { return v.Kind().Has(KindExternal) }
func (v *Value) IsInt32() bool                 { return v.Kind().Has(KindInt32) }
func (v *Value) IsUint32() bool                { return v.Kind().Has(KindUint32) }
func (v *Value) IsDate() bool                  { return v.Kind().Has(KindDate) }
func (v *Value) IsArgumentsObject() bool       { return v.Kind().Has(KindArgumentsObject) }
func (v *Value) IsBigIntObject() bool          { return v.Kind().Has(KindBigIntObject) }
func (v *Value) IsNumberObject() bool          { return v.Kind().Has(KindNumberObject) }
func (v *Value) IsStringObject() bool          { return v.Kind().Has(KindStringObject) }
func (v *Value) IsSymbolObject() bool          { return v.Kind().Has(KindSymbolObject) }
func (v *Value) IsNativeError() bool           { return v.Kind().Has(KindNativeError) }
func (v *Value) IsRegExp() bool                { return v.Kind().Has(KindRegExp) }
func (v *Value) IsAsyncFunction() bool         { return v.Kind().Has(KindAsyncFunction) }
func (v *Value) IsGeneratorFunction() bool     { return v.Kind().Has(KindGeneratorFunction) }
func (v *Value) IsGeneratorObject() bool       { return v.Kind().Has(KindGeneratorObject) }
func (v *Value) IsPromise() bool               { return v.Kind().Has(KindPromise) }
func (v *Value) IsMap() bool                   { return v.Kind().Has(KindMap) }
func (v *Value) IsSet() bool                   { return v.Kind().Has(KindSet) }
func (v *Value) IsMapIterator() bool           { return v.Kind().Has(KindMapIterator) }
func (v *Value) IsSetIterator() bool           { return v.Kind().Has(KindSetIterator) }
func (v *Value) IsWeakMap() bool               { return v.Kind().Has(KindWeakMap) }
func (v *Value) IsWeakSet() bool               { return v.Kind().Has(KindWeakSet) }
func (v *Value) IsArray() bool                 { return v.Kind().Has(KindArray) }
func (v *Value) IsArrayBuffer() bool           { return v.Kind().Has(KindArrayBuffer) }
func (v *Value) IsArrayBufferView() bool       { return v.Kind().Has(KindArrayBufferView) }
func (v *Value) IsTypedArray() bool            { return v.Kind().Has(KindTypedArray) }
func (v *Value) IsUint8Array() bool            { return v.Kind().Has(KindUint8Array) }
func (v *Value) IsUint8ClampedArray() bool     { return v.Kind().Has(KindUint8ClampedArray) }
func (v *Value) IsInt8Array() bool             { return v.Kind().Has(KindInt8Array) }
func (v *Value) IsUint16Array() bool           { return v.Kind().Has(KindUint16Array) }
func (v *Value) IsInt16Array() bool            { return v.Kind().Has(KindInt16Array) }
func (v *Value) IsUint32Array() bool           { return v.Kind().Has(KindUint32Array) }
func (v *Value) IsInt32Array() bool            { return v.Kind().Has(KindInt32Array) }
func (v *Value) IsFloat32Array() bool          { return v.Kind().Has(KindFloat32Array) }
func (v *Value) IsFloat64Array() bool          { return v.Kind().Has(KindFloat64Array) }
func (v *Value) IsBigInt64Array() bool         { return v.Kind().Has(KindBigInt64Array) }
func (v *Value) IsBigUint64Array() bool        { return v.Kind().Has(KindBigUint64Array) }
func (v *Value) IsDataView() bool              { return v.Kind().Has(KindDataView) }
func (v *Value) IsSharedArrayBuffer() bool     { return v.Kind().Has(KindSharedArrayBuffer) }
func (v *Value) IsProxy() bool                 { return v.Kind().Has(KindProxy) }
func (v *Value) IsWasmModuleObject() bool      { return v.Kind().Has(KindWasmModuleObject) }
func (v *Value) IsModuleNamespaceObject() bool { return v.Kind().Has(KindModuleNamespaceObject) }
