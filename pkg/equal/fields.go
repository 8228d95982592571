package equal

import (
	"reflect"
	"sort"
	"strings"
	"sync"
)

// field is one object key of a struct type, resolved the way encoding/json
// resolves it: untagged embedded structs are flattened into their parent and
// the shallowest (then tagged) field wins a name.
type field struct {
	name      string
	index     []int
	tagged    bool
	omitEmpty bool
}

type structFields struct {
	list   []field
	byName map[string]int
}

var fieldCache sync.Map // map[reflect.Type]*structFields

func cachedFields(t reflect.Type) *structFields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*structFields)
	}
	list := typeFields(t)
	sf := &structFields{list: list, byName: make(map[string]int, len(list))}
	for i, f := range list {
		sf.byName[f.name] = i
	}
	f, _ := fieldCache.LoadOrStore(t, sf)
	return f.(*structFields)
}

func typeFields(t reflect.Type) []field {
	type queued struct {
		typ   reflect.Type
		index []int
	}

	var found []field
	visited := map[reflect.Type]bool{}
	next := []queued{{typ: t}}

	for len(next) > 0 {
		current := next
		next = nil

		for _, q := range current {
			if visited[q.typ] {
				continue
			}
			visited[q.typ] = true

			for i := 0; i < q.typ.NumField(); i++ {
				sf := q.typ.Field(i)
				ft := sf.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if sf.Anonymous {
					if !sf.IsExported() && ft.Kind() != reflect.Struct {
						continue
					}
				} else if !sf.IsExported() {
					continue
				}

				tag := sf.Tag.Get("json")
				if tag == "-" {
					continue
				}
				name, opts, _ := strings.Cut(tag, ",")

				index := make([]int, len(q.index)+1)
				copy(index, q.index)
				index[len(q.index)] = i

				if name == "" && sf.Anonymous && ft.Kind() == reflect.Struct {
					next = append(next, queued{typ: ft, index: index})
					continue
				}

				f := field{name: name, index: index, tagged: name != ""}
				if !f.tagged {
					f.name = sf.Name
				}
				f.omitEmpty = hasOption(opts, "omitempty")
				found = append(found, f)
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		x, y := found[i], found[j]
		if x.name != y.name {
			return x.name < y.name
		}
		if len(x.index) != len(y.index) {
			return len(x.index) < len(y.index)
		}
		return x.tagged && !y.tagged
	})

	out := found[:0:0]
	for i := 0; i < len(found); {
		j := i + 1
		for j < len(found) && found[j].name == found[i].name {
			j++
		}
		if f, ok := dominant(found[i:j]); ok {
			out = append(out, f)
		}
		i = j
	}
	return out
}

// dominant picks the field that owns a name. Two fields at the same depth
// with the same taggedness cancel out and the name disappears.
func dominant(fields []field) (field, bool) {
	if len(fields) > 1 &&
		len(fields[0].index) == len(fields[1].index) &&
		fields[0].tagged == fields[1].tagged {
		return field{}, false
	}
	return fields[0], true
}

func hasOption(opts, name string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == name {
			return true
		}
	}
	return false
}

// fieldValue follows f.index from v. ok is false when an embedded pointer
// on the way is nil, or the field is empty and tagged omitempty.
func fieldValue(v reflect.Value, f field) (reflect.Value, bool) {
	fv, err := v.FieldByIndexErr(f.index)
	if err != nil {
		return reflect.Value{}, false
	}
	if f.omitEmpty && isEmptyValue(fv) {
		return reflect.Value{}, false
	}
	return fv, true
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
