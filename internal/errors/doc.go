// Package errors provides structured, actionable errors for vquery.
//
// Each error carries a registered code (e.g. "E101") that maps to a short
// message, a longer explanation, and a documentation URL. Errors wrap their
// cause so errors.Is and errors.As keep working across package boundaries.
//
// # Usage
//
//	err := errors.New("E202").
//	    WithDetail("line 3: did not find expected key").
//	    Wrap(cause)
//
//	fmt.Println(err.Format())
//	// ERROR E202: Config file could not be parsed
//	//
//	//   line 3: did not find expected key
//	//
//	//   Learn more: https://vango.dev/docs/vquery/errors/E202
package errors
