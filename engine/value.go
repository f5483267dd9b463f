package engine

import (
	"math/big"
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/errors"
)

// Value is a caller-owned box around an engine value. It records the
// isolate it belongs to and, for values produced by script execution, the
// context that produced them.
type Value struct {
	iso *Isolate
	ctx *Context
	val goja.Value

	kind     Kind
	disposed bool
}

// ValueBigInt is the word form of a big integer: magnitude words with the
// least significant word first, plus a sign bit. Zero has no words.
type ValueBigInt struct {
	Words   []uint64
	SignBit int
}

// WordCount returns the number of magnitude words.
func (b *ValueBigInt) WordCount() int {
	return len(b.Words)
}

// Int returns the value as a big.Int.
func (b *ValueBigInt) Int() *big.Int {
	n := bigFromWords(b.Words)
	if b.SignBit != 0 {
		n.Neg(n)
	}
	return n
}

// NewValueInteger creates a number value from an int32.
func NewValueInteger(iso *Isolate, v int32) *Value {
	return iso.newPrimitive(int64(v))
}

// NewValueIntegerFromUnsigned creates a number value from a uint32.
func NewValueIntegerFromUnsigned(iso *Isolate, v uint32) *Value {
	return iso.newPrimitive(int64(v))
}

// NewValueString creates a string value.
func NewValueString(iso *Isolate, v string) *Value {
	return iso.newPrimitive(v)
}

// NewValueBoolean creates a boolean value; any non-zero v is true.
func NewValueBoolean(iso *Isolate, v int) *Value {
	return iso.newPrimitive(v != 0)
}

// NewValueNumber creates a number value from a float64.
func NewValueNumber(iso *Isolate, v float64) *Value {
	return iso.newPrimitive(v)
}

// NewValueUndefined returns the undefined value.
func NewValueUndefined(iso *Isolate) *Value {
	s := iso.enter(errors.PhaseValue)
	defer s.exit()
	return &Value{iso: iso, val: goja.Undefined()}
}

// NewValueNull returns the null value.
func NewValueNull(iso *Isolate) *Value {
	s := iso.enter(errors.PhaseValue)
	defer s.exit()
	return &Value{iso: iso, val: goja.Null()}
}

// NewValueBigInt creates a big integer value from an int64.
func NewValueBigInt(iso *Isolate, v int64) *Value {
	return iso.newBigInt(big.NewInt(v))
}

// NewValueBigIntFromUnsigned creates a big integer value from a uint64.
func NewValueBigIntFromUnsigned(iso *Isolate, v uint64) *Value {
	return iso.newBigInt(new(big.Int).SetUint64(v))
}

// NewValueBigIntFromWords creates a big integer from magnitude words, least
// significant first. A non-zero signBit makes the result negative.
func NewValueBigIntFromWords(iso *Isolate, signBit int, words []uint64) *Value {
	n := bigFromWords(words)
	if signBit != 0 {
		n.Neg(n)
	}
	return iso.newBigInt(n)
}

func (iso *Isolate) newPrimitive(v any) *Value {
	s := iso.enter(errors.PhaseValue)
	defer s.exit()
	return &Value{iso: iso, val: iso.scratchRealm().rt.ToValue(v)}
}

// newBigInt builds the value in the scratch realm, which owns the BigInt
// constructor the conversion goes through.
func (iso *Isolate) newBigInt(n *big.Int) *Value {
	s := iso.enter(errors.PhaseValue)
	defer s.exit()

	r := iso.scratchRealm()
	neg := n.Sign() < 0
	hex := new(big.Int).Abs(n).Text(16)

	res, err := r.call(r.bigintFromHex, r.rt.ToValue(neg), r.rt.ToValue(hex))
	if err != nil {
		panic(errors.Wrap(errors.PhaseValue, errors.KindUnsupported, err, "construct BigInt"))
	}
	return &Value{iso: iso, val: res}
}

// Isolate returns the owning isolate.
func (v *Value) Isolate() *Isolate {
	return v.iso
}

// Context returns the context that produced the value, or nil for values
// created directly on an isolate.
func (v *Value) Context() *Context {
	return v.ctx
}

// Kind returns every predicate that holds for the value. Classification
// never runs script code.
func (v *Value) Kind() Kind {
	s := v.enter()
	defer s.exit()

	if v.kind != 0 {
		return v.kind
	}

	k := s.realmFor(v.ctx).kindOf(v.val)
	if obj, ok := v.val.(*goja.Object); ok && v.ctx != nil {
		if _, isModule := v.ctx.wasmModules[obj]; isModule {
			k |= KindWasmModuleObject
		}
	}
	v.kind = k
	return k
}

// Dispose releases the box. A second call is a misuse; it is logged and
// otherwise ignored.
func (v *Value) Dispose() {
	if v == nil {
		return
	}

	v.iso.mu.Lock()
	defer v.iso.mu.Unlock()

	if v.disposed {
		Logger().Warn("value disposed twice", zap.String("isolate", v.iso.id))
		return
	}
	v.disposed = true
	if v.ctx != nil && !v.iso.disposed {
		v.ctx.releaseValue()
	}
	v.val = nil
}

func (v *Value) enter() *scope {
	if v == nil {
		panic(errors.InvalidInput(errors.PhaseValue, "nil value"))
	}
	s := v.iso.enter(errors.PhaseValue)
	if v.disposed {
		s.exit()
		panic(errors.Disposed(errors.PhaseValue, "Value"))
	}
	return s
}

func bigFromWords(words []uint64) *big.Int {
	n := new(big.Int)
	word := new(big.Int)
	for i := len(words) - 1; i >= 0; i-- {
		n.Lsh(n, 64)
		n.Or(n, word.SetUint64(words[i]))
	}
	return n
}

// wordsFromBig returns the magnitude words of n, least significant first.
func wordsFromBig(n *big.Int) []uint64 {
	buf := new(big.Int).Abs(n).Bytes()
	words := make([]uint64, (len(buf)+7)/8)
	for i := range words {
		end := len(buf) - i*8
		start := max(end-8, 0)
		var w uint64
		for _, c := range buf[start:end] {
			w = w<<8 | uint64(c)
		}
		words[i] = w
	}
	return words
}

func parseBigIntHex(s string) (*ValueBigInt, bool) {
	hex, neg := strings.CutPrefix(s, "-")
	n, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return nil, false
	}
	b := &ValueBigInt{Words: wordsFromBig(n)}
	if neg && n.Sign() != 0 {
		b.SignBit = 1
	}
	return b, true
}
