// Package equal provides structural comparators over plain data.
//
// Plain data is what a query key or a fetched payload is made of: nil,
// bools, numbers, strings, slices and arrays, maps, and structs. Maps and
// structs are both treated as objects keyed by string (struct fields use
// their JSON name), so a decoded map[string]any compares equal to the struct
// it was decoded from.
//
//	equal.DeepEqual(map[string]any{"a": 1}, map[string]any{"a": 1.0}) // true
//	equal.DeepIncludes(config, map[string]any{"retry": 3})           // partial match
//
// DeepIncludes is deliberately asymmetric: it reports whether every key of b
// is present, recursively, in a. Neither function detects cycles.
package equal
