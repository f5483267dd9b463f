package capi

import (
	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/resource"
)

// ValueBigInt is the word form of a big integer. Words is nil when a
// conversion failed; zero has an empty, non-nil Words.
type ValueBigInt = engine.ValueBigInt

func newValue(isoHandle resource.Handle, op string, build func(*engine.Isolate) *engine.Value) (h resource.Handle) {
	defer recoverLogged(op)

	return withIsolate(isoHandle, op, TypeValue, func(iso *engine.Isolate) resource.Dropper {
		return &valueBox{val: build(iso), owner: isoHandle}
	})
}

// NewValueInteger creates a number value from an int32.
func NewValueInteger(iso resource.Handle, v int32) resource.Handle {
	return newValue(iso, "NewValueInteger", func(i *engine.Isolate) *engine.Value {
		return engine.NewValueInteger(i, v)
	})
}

// NewValueIntegerFromUnsigned creates a number value from a uint32.
func NewValueIntegerFromUnsigned(iso resource.Handle, v uint32) resource.Handle {
	return newValue(iso, "NewValueIntegerFromUnsigned", func(i *engine.Isolate) *engine.Value {
		return engine.NewValueIntegerFromUnsigned(i, v)
	})
}

// NewValueString creates a string value.
func NewValueString(iso resource.Handle, v string) resource.Handle {
	return newValue(iso, "NewValueString", func(i *engine.Isolate) *engine.Value {
		return engine.NewValueString(i, v)
	})
}

// NewValueBoolean creates a boolean value; any non-zero v is true.
func NewValueBoolean(iso resource.Handle, v int) resource.Handle {
	return newValue(iso, "NewValueBoolean", func(i *engine.Isolate) *engine.Value {
		return engine.NewValueBoolean(i, v)
	})
}

// NewValueNumber creates a number value from a float64.
func NewValueNumber(iso resource.Handle, v float64) resource.Handle {
	return newValue(iso, "NewValueNumber", func(i *engine.Isolate) *engine.Value {
		return engine.NewValueNumber(i, v)
	})
}

// NewValueUndefined returns a handle to undefined.
func NewValueUndefined(iso resource.Handle) resource.Handle {
	return newValue(iso, "NewValueUndefined", engine.NewValueUndefined)
}

// NewValueNull returns a handle to null.
func NewValueNull(iso resource.Handle) resource.Handle {
	return newValue(iso, "NewValueNull", engine.NewValueNull)
}

// NewValueBigInt creates a big integer value from an int64.
func NewValueBigInt(iso resource.Handle, v int64) resource.Handle {
	return newValue(iso, "NewValueBigInt", func(i *engine.Isolate) *engine.Value {
		return engine.NewValueBigInt(i, v)
	})
}

// NewValueBigIntFromUnsigned creates a big integer value from a uint64.
func NewValueBigIntFromUnsigned(iso resource.Handle, v uint64) resource.Handle {
	return newValue(iso, "NewValueBigIntFromUnsigned", func(i *engine.Isolate) *engine.Value {
		return engine.NewValueBigIntFromUnsigned(i, v)
	})
}

// NewValueBigIntFromWords creates a big integer from magnitude words, least
// significant first. A non-zero signBit makes the result negative.
func NewValueBigIntFromWords(iso resource.Handle, signBit int, words []uint64) resource.Handle {
	return newValue(iso, "NewValueBigIntFromWords", func(i *engine.Isolate) *engine.Value {
		return engine.NewValueBigIntFromWords(i, signBit, words)
	})
}

// ValueDispose releases a value. The null handle is a no-op.
func ValueDispose(h resource.Handle) error {
	return release(values, h)
}

// ValueKind returns every predicate that holds for the value, or 0 for an
// unknown handle.
func ValueKind(h resource.Handle) engine.Kind {
	return withValue(h, "ValueKind", (*engine.Value).Kind)
}

// withValue applies fn to the value behind h. Unknown handles and engine
// misuse yield the zero result.
func withValue[T any](h resource.Handle, op string, fn func(*engine.Value) T) (out T) {
	defer recoverLogged(op)

	vb, err := lookup(values, h)
	if err != nil {
		logFailure(op, err)
		return out
	}
	return fn(vb.val)
}

// ValueToBoolean returns ToBoolean of the value.
func ValueToBoolean(h resource.Handle) bool {
	return withValue(h, "ValueToBoolean", (*engine.Value).Boolean)
}

// ValueToInt32 returns ToInt32 of the value.
func ValueToInt32(h resource.Handle) int32 {
	return withValue(h, "ValueToInt32", (*engine.Value).Int32)
}

// ValueToUint32 returns ToUint32 of the value.
func ValueToUint32(h resource.Handle) uint32 {
	return withValue(h, "ValueToUint32", (*engine.Value).Uint32)
}

// ValueToInteger returns the value as a saturated int64.
func ValueToInteger(h resource.Handle) int64 {
	return withValue(h, "ValueToInteger", (*engine.Value).Integer)
}

// ValueToNumber returns ToNumber of the value.
func ValueToNumber(h resource.Handle) float64 {
	return withValue(h, "ValueToNumber", (*engine.Value).Number)
}

// ValueToString returns ToString of the value.
func ValueToString(h resource.Handle) string {
	return withValue(h, "ValueToString", (*engine.Value).String)
}

// ValueToDetailString returns the side-effect free description of the value.
func ValueToDetailString(h resource.Handle) string {
	return withValue(h, "ValueToDetailString", (*engine.Value).DetailString)
}

// ValueToArrayIndex returns the array index the value denotes, or nil.
func ValueToArrayIndex(h resource.Handle) *uint32 {
	return withValue(h, "ValueToArrayIndex", func(v *engine.Value) *uint32 {
		idx, ok := v.ArrayIndex()
		if !ok {
			return nil
		}
		return &idx
	})
}

// ValueToBigInt returns the word form of the value. Words is nil when the
// value cannot be converted.
func ValueToBigInt(h resource.Handle) ValueBigInt {
	return withValue(h, "ValueToBigInt", func(v *engine.Value) ValueBigInt {
		b := v.BigInt()
		if b == nil {
			return ValueBigInt{}
		}
		return *b
	})
}
