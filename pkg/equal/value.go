package equal

import (
	"reflect"
	"strconv"
	"time"
)

// Valuer is implemented by primitive-like objects. Two values are compared
// by their ValueOf results when either side implements Valuer.
type Valuer interface {
	ValueOf() any
}

// kind groups reflect kinds into the categories plain data distinguishes.
type kind uint8

const (
	kindObject kind = iota // nil, maps, structs, slices, arrays
	kindBool
	kindNumber
	kindString
	kindFunc
	kindOther
)

func kindOf(v reflect.Value) kind {
	if !v.IsValid() {
		return kindObject
	}
	switch v.Kind() {
	case reflect.Bool:
		return kindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return kindNumber
	case reflect.String:
		return kindString
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		return kindObject
	case reflect.Func:
		return kindFunc
	default:
		return kindOther
	}
}

// deref strips interfaces and pointers. A nil anywhere yields the invalid
// Value, which stands for nil.
func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// valueOf returns the primitive form of a Valuer (or time.Time) and whether
// v is primitive-like at all.
func valueOf(v reflect.Value) (any, bool) {
	for v.IsValid() {
		if v.CanInterface() {
			switch x := v.Interface().(type) {
			case Valuer:
				if v.Kind() == reflect.Pointer && v.IsNil() {
					return nil, false
				}
				return x.ValueOf(), true
			case time.Time:
				return x.UnixNano(), true
			}
		}
		if v.Kind() != reflect.Interface && v.Kind() != reflect.Pointer {
			break
		}
		if v.IsNil() {
			break
		}
		v = v.Elem()
	}
	return nil, false
}

// strictEqual is identity for references and value equality for
// primitives. NaN is never strictly equal to itself.
func strictEqual(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return !a.IsValid() && !b.IsValid()
	}

	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return false
	}

	switch ka {
	case kindBool:
		return a.Bool() == b.Bool()
	case kindNumber:
		return numberEqual(a, b)
	case kindString:
		return a.String() == b.String()
	case kindFunc:
		// Code pointer identity; distinct closures of one literal compare equal.
		return a.Pointer() == b.Pointer()
	}

	if a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Map:
		return a.Pointer() == b.Pointer()
	case reflect.Slice:
		return a.Pointer() == b.Pointer() && a.Len() == b.Len()
	case reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()
	}
	return false
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

func isNaN(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		return f != f
	}
	return false
}

func isList(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}

func isObject(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Map || v.Kind() == reflect.Struct)
}

// member is one own key of an object or list.
type member struct {
	key string
	val reflect.Value
}

// members lists the own keys of an object (map keys, struct fields as
// encoding/json names them) or list (indices). Other values have no members.
func members(v reflect.Value) []member {
	switch {
	case !v.IsValid():
		return nil
	case isList(v):
		out := make([]member, v.Len())
		for i := range out {
			out[i] = member{key: strconv.Itoa(i), val: v.Index(i)}
		}
		return out
	case v.Kind() == reflect.Map:
		out := make([]member, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out = append(out, member{key: keyString(iter.Key()), val: iter.Value()})
		}
		return out
	case v.Kind() == reflect.Struct:
		fields := cachedFields(v.Type()).list
		out := make([]member, 0, len(fields))
		for _, f := range fields {
			if fv, ok := fieldValue(v, f); ok {
				out = append(out, member{key: f.name, val: fv})
			}
		}
		return out
	}
	return nil
}

// lookup resolves key on an object or list. ok is false when the key is
// absent, which is distinct from a present nil.
func lookup(v reflect.Value, key string) (reflect.Value, bool) {
	switch {
	case !v.IsValid():
		return reflect.Value{}, false
	case isList(v):
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= v.Len() {
			return reflect.Value{}, false
		}
		return v.Index(i), true
	case v.Kind() == reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			mv := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
			return mv, mv.IsValid()
		}
		iter := v.MapRange()
		for iter.Next() {
			if keyString(iter.Key()) == key {
				return iter.Value(), true
			}
		}
	case v.Kind() == reflect.Struct:
		fields := cachedFields(v.Type())
		if i, ok := fields.byName[key]; ok {
			return fieldValue(v, fields.list[i])
		}
	}
	return reflect.Value{}, false
}

func keyString(k reflect.Value) string {
	k = deref(k)
	if !k.IsValid() {
		return "null"
	}
	switch {
	case k.Kind() == reflect.String:
		return k.String()
	case isInt(k):
		return strconv.FormatInt(k.Int(), 10)
	case isUint(k):
		return strconv.FormatUint(k.Uint(), 10)
	case k.Kind() == reflect.Bool:
		return strconv.FormatBool(k.Bool())
	case k.Kind() == reflect.Float32 || k.Kind() == reflect.Float64:
		return strconv.FormatFloat(k.Float(), 'g', -1, 64)
	}
	return k.String()
}
