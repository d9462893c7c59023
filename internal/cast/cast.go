package cast

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/cast"
	"go.dw1.io/safemath"
)

// ErrNotInteger is returned by [Bits] for values whose kind is not an
// integer.
var ErrNotInteger = errors.New("not an integer")

// Text returns v as a string if it is a string or a byte slice.
func Text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	default:
		return "", false
	}
}

// Bits converts an integer of any width, including named integer types, to a
// 32-bit flag set. A nil v is zero.
func Bits(v any) (uint32, error) {
	if v == nil {
		return 0, nil
	}

	n, ok := intVal(v)
	if !ok {
		return 0, fmt.Errorf("%w: %T", ErrNotInteger, v)
	}

	return safemath.ConvertAny[uint32](n)
}

// Int parses an integer setting such as "128".
func Int(v any) (int, error) {
	if n, ok := intVal(v); ok {
		return safemath.ConvertAny[int](n)
	}

	return cast.ToIntE(v)
}

// Duration parses a duration setting. Bare numbers are nanoseconds.
func Duration(v any) (time.Duration, error) {
	return cast.ToDurationE(v)
}

// intVal unwraps v to int64 or uint64 when its kind is an integer, so that
// named types such as option bitsets convert like their underlying type.
func intVal(v any) (any, bool) {
	if isIntVal(v) {
		return v, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	default:
		return nil, false
	}
}

// isIntVal reports whether v's dynamic type is one of the integer types
// eligible for safemath conversions.
func isIntVal(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr:
		return true
	default:
		return false
	}
}
