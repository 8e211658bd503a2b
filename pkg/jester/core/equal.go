package core

import (
	"fmt"
	"reflect"
)

// DeepEqual compares two values structurally.
//
//   - nil interfaces, pointers, funcs and channels are null, and null only
//     equals null. It never equals 0, "" or false.
//   - numbers compare by value across numeric kinds, so int(1) equals
//     float64(1). Strings and bools compare by value.
//   - slices and arrays compare by length, then element by element.
//   - maps compare by key set, then key by key.
//   - structs of the same type compare field by field.
//   - pointers are followed; funcs and channels compare by identity.
//
// Anything else falls back to comparing the fmt.Sprint rendering.
func DeepEqual(a, b any) bool {
	return deepEqual(reflect.ValueOf(a), reflect.ValueOf(b), make(map[visit]bool))
}

type visit struct {
	a, b uintptr
	typ  reflect.Type
}

func deepEqual(a, b reflect.Value, visited map[visit]bool) bool {
	a = unwrap(a)
	b = unwrap(b)

	aNull, bNull := isNull(a), isNull(b)
	if aNull || bNull {
		return aNull && bNull
	}

	if isNumber(a) && isNumber(b) {
		return numberEqual(a, b)
	}

	switch {
	case isSequence(a) && isSequence(b):
		if a.Len() != b.Len() {
			return false
		}
		if a.Kind() == reflect.Slice && b.Kind() == reflect.Slice && a.Type() == b.Type() {
			if seen(a, b, visited) {
				return true
			}
		}
		for i := 0; i < a.Len(); i++ {
			if !deepEqual(a.Index(i), b.Index(i), visited) {
				return false
			}
		}
		return true

	case a.Kind() == reflect.Map && b.Kind() == reflect.Map:
		return mapEqual(a, b, visited)

	case a.Kind() == reflect.Struct && b.Kind() == reflect.Struct:
		if a.Type() != b.Type() {
			return false
		}
		for i := 0; i < a.NumField(); i++ {
			if !deepEqual(a.Field(i), b.Field(i), visited) {
				return false
			}
		}
		return true

	case a.Kind() == reflect.Pointer && b.Kind() == reflect.Pointer:
		if a.Pointer() == b.Pointer() {
			return true
		}
		if seen(a, b, visited) {
			return true
		}
		return deepEqual(a.Elem(), b.Elem(), visited)

	case a.Kind() == reflect.String && b.Kind() == reflect.String:
		return a.String() == b.String()

	case a.Kind() == reflect.Bool && b.Kind() == reflect.Bool:
		return a.Bool() == b.Bool()

	case isComplex(a) && isComplex(b):
		return a.Complex() == b.Complex()

	case a.Kind() == reflect.Func && b.Kind() == reflect.Func,
		a.Kind() == reflect.Chan && b.Kind() == reflect.Chan,
		a.Kind() == reflect.UnsafePointer && b.Kind() == reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	}

	if a.Kind() != b.Kind() {
		return false
	}

	// Equal needs no CanInterface, so values behind unexported fields still
	// compare.
	if a.Type() == b.Type() && a.Comparable() {
		return a.Equal(b)
	}

	if !a.CanInterface() || !b.CanInterface() {
		return false
	}

	return fmt.Sprint(a.Interface()) == fmt.Sprint(b.Interface())
}

func mapEqual(a, b reflect.Value, visited map[visit]bool) bool {
	if a.Len() != b.Len() {
		return false
	}

	if a.Type() == b.Type() && seen(a, b, visited) {
		return true
	}

	sameKeyType := a.Type().Key() == b.Type().Key()

	iter := a.MapRange()
	for iter.Next() {
		var other reflect.Value
		if sameKeyType {
			other = b.MapIndex(iter.Key())
		} else {
			other = lookupKey(b, iter.Key(), visited)
		}

		if !other.IsValid() {
			return false
		}

		if !deepEqual(iter.Value(), other, visited) {
			return false
		}
	}

	return true
}

// Finds the value stored under a key that is deep-equal to key. Used when the
// two maps have different key types, e.g. map[any]any against map[string]int.
func lookupKey(m reflect.Value, key reflect.Value, visited map[visit]bool) reflect.Value {
	iter := m.MapRange()
	for iter.Next() {
		if deepEqual(iter.Key(), key, visited) {
			return iter.Value()
		}
	}

	return reflect.Value{}
}

// Records a pair of references as being compared, returning true if the pair
// was already under comparison. Breaks cycles in self-referencing values.
func seen(a, b reflect.Value, visited map[visit]bool) bool {
	pa, pb := a.Pointer(), b.Pointer()
	if pa > pb {
		pa, pb = pb, pa
	}

	v := visit{pa, pb, a.Type()}
	if visited[v] {
		return true
	}

	visited[v] = true
	return false
}

func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func isNull(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	}

	return false
}

func isSequence(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func isNumber(v reflect.Value) bool {
	return isInt(v) || isUint(v) || isFloat(v)
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func numberEqual(a, b reflect.Value) bool {
	switch {
	case isInt(a) && isInt(b):
		return a.Int() == b.Int()
	case isUint(a) && isUint(b):
		return a.Uint() == b.Uint()
	case isInt(a) && isUint(b):
		return a.Int() >= 0 && uint64(a.Int()) == b.Uint()
	case isUint(a) && isInt(b):
		return b.Int() >= 0 && a.Uint() == uint64(b.Int())
	}

	return toFloat(a) == toFloat(b)
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case isUint(v):
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func isComplex(v reflect.Value) bool {
	return v.Kind() == reflect.Complex64 || v.Kind() == reflect.Complex128
}
