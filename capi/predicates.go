package capi

import (
	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/resource"
)

// Predicates report false for unknown handles.

func ValueIsUndefined(h resource.Handle) bool {
	return withValue(h, "ValueIsUndefined", (*engine.Value).IsUndefined)
}

func ValueIsNull(h resource.Handle) bool {
	return withValue(h, "ValueIsNull", (*engine.Value).IsNull)
}

func ValueIsNullOrUndefined(h resource.Handle) bool {
	return withValue(h, "ValueIsNullOrUndefined", (*engine.Value).IsNullOrUndefined)
}

func ValueIsTrue(h resource.Handle) bool {
	return withValue(h, "ValueIsTrue", (*engine.Value).IsTrue)
}

func ValueIsFalse(h resource.Handle) bool {
	return withValue(h, "ValueIsFalse", (*engine.Value).IsFalse)
}

func ValueIsName(h resource.Handle) bool {
	return withValue(h, "ValueIsName", (*engine.Value).IsName)
}

func ValueIsString(h resource.Handle) bool {
	return withValue(h, "ValueIsString", (*engine.Value).IsString)
}

func ValueIsSymbol(h resource.Handle) bool {
	return withValue(h, "ValueIsSymbol", (*engine.Value).IsSymbol)
}

func ValueIsFunction(h resource.Handle) bool {
	return withValue(h, "ValueIsFunction", (*engine.Value).IsFunction)
}

func ValueIsObject(h resource.Handle) bool {
	return withValue(h, "ValueIsObject", (*engine.Value).IsObject)
}

func ValueIsBigInt(h resource.Handle) bool {
	return withValue(h, "ValueIsBigInt", (*engine.Value).IsBigInt)
}

func ValueIsBoolean(h resource.Handle) bool {
	return withValue(h, "ValueIsBoolean", (*engine.Value).IsBoolean)
}

func ValueIsNumber(h resource.Handle) bool {
	return withValue(h, "ValueIsNumber", (*engine.Value).IsNumber)
}

func ValueIsExternal(h resource.Handle) bool {
	return withValue(h, "ValueIsExternal", (*engine.Value).IsExternal)
}

func ValueIsInt32(h resource.Handle) bool {
	return withValue(h, "ValueIsInt32", (*engine.Value).IsInt32)
}

func ValueIsUint32(h resource.Handle) bool {
	return withValue(h, "ValueIsUint32", (*engine.Value).IsUint32)
}

func ValueIsDate(h resource.Handle) bool {
	return withValue(h, "ValueIsDate", (*engine.Value).IsDate)
}

func ValueIsArgumentsObject(h resource.Handle) bool {
	return withValue(h, "ValueIsArgumentsObject", (*engine.Value).IsArgumentsObject)
}

func ValueIsBigIntObject(h resource.Handle) bool {
	return withValue(h, "ValueIsBigIntObject", (*engine.Value).IsBigIntObject)
}

func ValueIsNumberObject(h resource.Handle) bool {
	return withValue(h, "ValueIsNumberObject", (*engine.Value).IsNumberObject)
}

func ValueIsStringObject(h resource.Handle) bool {
	return withValue(h, "ValueIsStringObject", (*engine.Value).IsStringObject)
}

func ValueIsSymbolObject(h resource.Handle) bool {
	return withValue(h, "ValueIsSymbolObject", (*engine.Value).IsSymbolObject)
}

func ValueIsNativeError(h resource.Handle) bool {
	return withValue(h, "ValueIsNativeError", (*engine.Value).IsNativeError)
}

func ValueIsRegExp(h resource.Handle) bool {
	return withValue(h, "ValueIsRegExp", (*engine.Value).IsRegExp)
}

func ValueIsAsyncFunction(h resource.Handle) bool {
	return withValue(h, "ValueIsAsyncFunction", (*engine.Value).IsAsyncFunction)
}

func ValueIsGeneratorFunction(h resource.Handle) bool {
	return withValue(h, "ValueIsGeneratorFunction", (*engine.Value).IsGeneratorFunction)
}

func ValueIsGeneratorObject(h resource.Handle) bool {
	return withValue(h, "ValueIsGeneratorObject", (*engine.Value).IsGeneratorObject)
}

func ValueIsPromise(h resource.Handle) bool {
	return withValue(h, "ValueIsPromise", (*engine.Value).IsPromise)
}

func ValueIsMap(h resource.Handle) bool {
	return withValue(h, "ValueIsMap", (*engine.Value).IsMap)
}

func ValueIsSet(h resource.Handle) bool {
	return withValue(h, "ValueIsSet", (*engine.Value).IsSet)
}

func ValueIsMapIterator(h resource.Handle) bool {
	return withValue(h, "ValueIsMapIterator", (*engine.Value).IsMapIterator)
}

func ValueIsSetIterator(h resource.Handle) bool {
	return withValue(h, "ValueIsSetIterator", (*engine.Value).IsSetIterator)
}

func ValueIsWeakMap(h resource.Handle) bool {
	return withValue(h, "ValueIsWeakMap", (*engine.Value).IsWeakMap)
}

func ValueIsWeakSet(h resource.Handle) bool {
	return withValue(h, "ValueIsWeakSet", (*engine.Value).IsWeakSet)
}

func ValueIsArray(h resource.Handle) bool {
	return withValue(h, "ValueIsArray", (*engine.Value).IsArray)
}

func ValueIsArrayBuffer(h resource.Handle) bool {
	return withValue(h, "ValueIsArrayBuffer", (*engine.Value).IsArrayBuffer)
}

func ValueIsArrayBufferView(h resource.Handle) bool {
	return withValue(h, "ValueIsArrayBufferView", (*engine.Value).IsArrayBufferView)
}

func ValueIsTypedArray(h resource.Handle) bool {
	return withValue(h, "ValueIsTypedArray", (*engine.Value).IsTypedArray)
}

func ValueIsUint8Array(h resource.Handle) bool {
	return withValue(h, "ValueIsUint8Array", (*engine.Value).IsUint8Array)
}

func ValueIsUint8ClampedArray(h resource.Handle) bool {
	return withValue(h, "ValueIsUint8ClampedArray", (*engine.Value).IsUint8ClampedArray)
}

func ValueIsInt8Array(h resource.Handle) bool {
	return withValue(h, "ValueIsInt8Array", (*engine.Value).IsInt8Array)
}

func ValueIsUint16Array(h resource.Handle) bool {
	return withValue(h, "ValueIsUint16Array", (*engine.Value).IsUint16Array)
}

func ValueIsInt16Array(h resource.Handle) bool {
	return withValue(h, "ValueIsInt16Array", (*engine.Value).IsInt16Array)
}

func ValueIsUint32Array(h resource.Handle) bool {
	return withValue(h, "ValueIsUint32Array", (*engine.Value).IsUint32Array)
}

func ValueIsInt32Array(h resource.Handle) bool {
	return withValue(h, "ValueIsInt32Array", (*engine.Value).IsInt32Array)
}

func ValueIsFloat32Array(h resource.Handle) bool {
	return withValue(h, "ValueIsFloat32Array", (*engine.Value).IsFloat32Array)
}

func ValueIsFloat64Array(h resource.Handle) bool {
	return withValue(h, "ValueIsFloat64Array", (*engine.Value).IsFloat64Array)
}

func ValueIsBigInt64Array(h resource.Handle) bool {
	return withValue(h, "ValueIsBigInt64Array", (*engine.Value).IsBigInt64Array)
}

func ValueIsBigUint64Array(h resource.Handle) bool {
	return withValue(h, "ValueIsBigUint64Array", (*engine.Value).IsBigUint64Array)
}

func ValueIsDataView(h resource.Handle) bool {
	return withValue(h, "ValueIsDataView", (*engine.Value).IsDataView)
}

func ValueIsSharedArrayBuffer(h resource.Handle) bool {
	return withValue(h, "ValueIsSharedArrayBuffer", (*engine.Value).IsSharedArrayBuffer)
}

func ValueIsProxy(h resource.Handle) bool {
	return withValue(h, "ValueIsProxy", (*engine.Value).IsProxy)
}

func ValueIsWasmModuleObject(h resource.Handle) bool {
	return withValue(h, "ValueIsWasmModuleObject", (*engine.Value).IsWasmModuleObject)
}

func ValueIsModuleNamespaceObject(h resource.Handle) bool {
	return withValue(h, "ValueIsModuleNamespaceObject", (*engine.Value).IsModuleNamespaceObject)
}
