package engine

import (
	"math"
	"strconv"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

const maxArrayIndex = math.MaxUint32 - 1

// Boolean returns the ECMAScript ToBoolean of the value.
func (v *Value) Boolean() bool {
	s := v.enter()
	defer s.exit()
	return v.val.ToBoolean()
}

// Number returns ToNumber of the value, or 0 when the conversion throws.
func (v *Value) Number() float64 {
	s := v.enter()
	defer s.exit()
	f, _ := v.number(s)
	return f
}

// Int32 returns ToInt32 of the value.
func (v *Value) Int32() int32 {
	s := v.enter()
	defer s.exit()
	f, _ := v.number(s)
	return toInt32(f)
}

// Uint32 returns ToUint32 of the value.
func (v *Value) Uint32() uint32 {
	s := v.enter()
	defer s.exit()
	f, _ := v.number(s)
	return toUint32(f)
}

// Integer returns the value truncated to an int64, saturating at the
// int64 bounds. NaN converts to 0.
func (v *Value) Integer() int64 {
	s := v.enter()
	defer s.exit()
	f, _ := v.number(s)
	return toInt64(f)
}

// String returns ToString of the value. It returns "" when the conversion
// throws, for example for symbols.
func (v *Value) String() string {
	s := v.enter()
	defer s.exit()
	str, _ := v.string(s)
	return str
}

// DetailString returns a description of the value that is computed without
// running script code: "#<Ctor>" for plain objects, "Name: message" for
// errors and the source text for functions.
func (v *Value) DetailString() string {
	s := v.enter()
	defer s.exit()

	if obj, ok := v.val.(*goja.Object); ok && obj.ExportType() == typeProxy {
		if _, callable := goja.AssertFunction(v.val); callable {
			return "[object Function]"
		}
		return "[object Object]"
	}

	r := s.realmFor(v.ctx)
	res, err := r.call(r.detail, v.val)
	if err != nil {
		v.warn("detail string", err)
		return ""
	}
	return res.String()
}

// ArrayIndex converts the value to an array index. The second result is
// false when the value is not a valid index.
func (v *Value) ArrayIndex() (uint32, bool) {
	s := v.enter()
	defer s.exit()

	if _, isObject := v.val.(*goja.Object); !isObject {
		switch n := v.val.Export().(type) {
		case int64:
			if n >= 0 && n <= maxArrayIndex {
				return uint32(n), true
			}
		case float64:
			if n >= 0 && n <= maxArrayIndex && n == math.Trunc(n) {
				return uint32(n), true
			}
		}
	}

	str, ok := v.string(s)
	if !ok {
		return 0, false
	}
	return parseArrayIndex(str)
}

// BigInt converts the value to its word form. It returns nil when the value
// cannot be converted; numbers are rejected as in ECMAScript ToBigInt.
func (v *Value) BigInt() *ValueBigInt {
	s := v.enter()
	defer s.exit()

	r := s.realmFor(v.ctx)
	res, err := r.callUser(r.bigintHex, v.val)
	if err != nil {
		v.warn("bigint", err)
		return nil
	}
	b, ok := parseBigIntHex(res.String())
	if !ok {
		v.warn("bigint", nil)
		return nil
	}
	return b
}

func (v *Value) number(s *scope) (float64, bool) {
	if _, isObject := v.val.(*goja.Object); !isObject {
		switch n := v.val.Export().(type) {
		case int64:
			return float64(n), true
		case float64:
			return n, true
		}
	}

	r := s.realmFor(v.ctx)
	res, err := r.callUser(r.toNumber, v.val)
	if err != nil {
		v.warn("number", err)
		return 0, false
	}
	return res.ToFloat(), true
}

func (v *Value) string(s *scope) (string, bool) {
	if _, isObject := v.val.(*goja.Object); !isObject {
		if str, ok := v.val.Export().(string); ok {
			return str, true
		}
	}

	r := s.realmFor(v.ctx)
	res, err := r.callUser(r.toStr, v.val)
	if err != nil {
		v.warn("string", err)
		return "", false
	}
	return res.String(), true
}

func (v *Value) warn(conversion string, err error) {
	fields := []zap.Field{
		zap.String("isolate", v.iso.id),
		zap.String("conversion", conversion),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	Logger().Warn("value conversion failed", fields...)
}

func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint32(int64(math.Mod(math.Trunc(f), 1<<32)))
}

func toInt32(f float64) int32 {
	return int32(toUint32(f))
}

func toInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// parseArrayIndex accepts canonical decimal strings up to 2^32-2.
func parseArrayIndex(s string) (uint32, bool) {
	if s == "" || len(s) > 10 || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n > maxArrayIndex {
		return 0, false
	}
	return uint32(n), true
}
