// Package stable produces canonical string forms of plain data.
//
// Two values that are deeply equal produce the same string regardless of
// map insertion order or struct field order: every object is written with
// its keys sorted. Arrays keep their order. The result is the fingerprint
// used to key cache entries.
package stable

import (
	"bytes"
	"encoding/json"

	"github.com/vango-dev/vquery/internal/errors"
	"github.com/vango-dev/vquery/pkg/metrics"
)

// Stringify encodes v as JSON with the keys of every nested object sorted.
//
// Struct fields are renamed by their json tags and sorted with everything
// else. Numbers keep their exact literal and HTML characters are left
// unescaped. Values that have no JSON form (channels, funcs, NaN) return
// an E101 error.
func Stringify(v any) (string, error) {
	raw, err := encode(v)
	if err != nil {
		return "", errors.New("E101").WithDetailf("%T", v).Wrap(err)
	}

	// Decoding into the generic tree turns every struct into a map, which
	// encoding/json writes in sorted key order.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return "", errors.New("E101").WithDetailf("%T", v).Wrap(err)
	}

	out, err := encode(tree)
	if err != nil {
		return "", errors.New("E101").WithDetailf("%T", v).Wrap(err)
	}
	return string(out), nil
}

// MustStringify is like Stringify but panics on error.
// It is intended for static keys known to be plain data.
func MustStringify(v any) string {
	s, err := Stringify(v)
	if err != nil {
		panic("stable: " + err.Error())
	}
	return s
}

// Fingerprint returns the cache key form of a query key. A bare string key
// is treated as a one-element list, so "todos" and []any{"todos"} share a
// fingerprint.
func Fingerprint(key any) (string, error) {
	if s, ok := key.(string); ok {
		key = []any{s}
	}
	fp, err := Stringify(key)
	if err != nil {
		metrics.RecordFingerprint("error")
		return "", err
	}
	metrics.RecordFingerprint("ok")
	return fp, nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
