package stable

import (
	"math"
	"testing"

	"github.com/vango-dev/vquery/internal/errors"
	"github.com/vango-dev/vquery/pkg/equal"
)

type page struct {
	Size   int    `json:"size"`
	Cursor string `json:"cursor"`
	Filter map[string]any
}

type Cursor struct {
	After string `json:"after"`
}

type search struct {
	Cursor
	Query string `json:"q"`
	Limit int    `json:"limit,omitempty"`
}

// Values that are deeply equal must stringify identically, and values that
// stringify identically as objects must be deeply equal.
func TestStringifyAgreesWithDeepEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
	}{
		{"embedded struct", search{Cursor: Cursor{After: "x"}, Query: "go", Limit: 5}, map[string]any{"after": "x", "q": "go", "limit": 5}},
		{"omitempty", search{Query: "go"}, map[string]any{"after": "", "q": "go"}},
		{"nested", []any{"todos", search{Query: "go"}}, []any{"todos", map[string]any{"after": "", "q": "go"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sa, sb := MustStringify(tt.a), MustStringify(tt.b)
			if sa != sb {
				t.Errorf("Stringify differs: %s vs %s", sa, sb)
			}
			if !equal.DeepEqual(tt.a, tt.b) {
				t.Errorf("DeepEqual(%v, %v) = false, want true", tt.a, tt.b)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "null"},
		{"string", "todos", `"todos"`},
		{"number literal kept", 1.50, `1.5`},
		{"big int exact", int64(9007199254740993), `9007199254740993`},
		{"array order kept", []any{3, 1, 2}, `[3,1,2]`},
		{"object keys sorted", map[string]any{"b": 2, "a": 1, "c": 3}, `{"a":1,"b":2,"c":3}`},
		{"nested objects sorted", map[string]any{"z": map[string]any{"y": 1, "x": 2}, "a": []any{map[string]any{"d": 1, "c": 2}}}, `{"a":[{"c":2,"d":1}],"z":{"x":2,"y":1}}`},
		{"struct fields sorted", page{Size: 10, Cursor: "abc", Filter: map[string]any{"done": true}}, `{"Filter":{"done":true},"cursor":"abc","size":10}`},
		{"html not escaped", map[string]any{"q": "<a&b>"}, `{"q":"<a&b>"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Stringify(tt.in)
			if err != nil {
				t.Fatalf("Stringify() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Stringify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStringifyKeyOrderIndependent(t *testing.T) {
	a := map[string]any{"a": 1, "b": 2}
	b := map[string]any{"b": 2, "a": 1}

	if MustStringify(a) != MustStringify(b) {
		t.Error("deeply equal maps should stringify identically")
	}

	s := struct {
		B int `json:"b"`
		A int `json:"a"`
	}{B: 2, A: 1}
	if MustStringify(s) != MustStringify(a) {
		t.Errorf("struct %s should match map %s", MustStringify(s), MustStringify(a))
	}
}

func TestStringifyUnsupported(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"channel", make(chan int)},
		{"func", func() {}},
		{"NaN", math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Stringify(tt.in)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasCode(err, "E101") {
				t.Errorf("error = %v, want code E101", err)
			}
		})
	}
}

func TestMustStringifyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustStringify should panic on unsupported values")
		}
	}()
	MustStringify(make(chan int))
}

func TestFingerprint(t *testing.T) {
	bare, err := Fingerprint("todos")
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	list, err := Fingerprint([]any{"todos"})
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if bare != list || bare != `["todos"]` {
		t.Errorf("Fingerprint(\"todos\") = %s, Fingerprint([todos]) = %s, want both [\"todos\"]", bare, list)
	}

	withVars, _ := Fingerprint([]any{"todo", map[string]any{"page": 2, "id": 5}})
	if withVars != `["todo",{"id":5,"page":2}]` {
		t.Errorf("Fingerprint() = %s", withVars)
	}
}
