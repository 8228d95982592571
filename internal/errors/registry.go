package errors

const docBase = "https://vango.dev/docs/vquery/errors/"

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Fingerprint Errors (E100-E199)
	// ============================================

	"E101": {
		Category:   CategoryFingerprint,
		Message:    "Value cannot be fingerprinted",
		Suggestion: "Query keys must be plain data: strings, numbers, bools, slices, maps and structs.",
		DocURL:     docBase + "E101",
	},

	// ============================================
	// Config Errors (E200-E299)
	// ============================================

	"E201": {
		Category:   CategoryConfig,
		Message:    "Config file could not be read",
		Suggestion: "Check that the path exists and is readable.",
		DocURL:     docBase + "E201",
	},
	"E202": {
		Category:   CategoryConfig,
		Message:    "Config file could not be parsed",
		Suggestion: "Durations are strings such as \"30s\" or \"5m\".",
		DocURL:     docBase + "E202",
	},
	"E203": {
		Category:   CategoryConfig,
		Message:    "Unknown config file format",
		Suggestion: "Use a .json, .yaml, .yml or .toml file.",
		DocURL:     docBase + "E203",
	},

	// ============================================
	// Protocol Errors (E300-E399)
	// ============================================

	"E301": {
		Category: CategoryProtocol,
		Message:  "Invalid environment report",
		DocURL:   docBase + "E301",
	},

	// ============================================
	// CLI Errors (E400-E499)
	// ============================================

	"E401": {
		Category:   CategoryCLI,
		Message:    "Input is not valid JSON",
		Suggestion: "Pass a JSON document as a file argument or on stdin.",
		DocURL:     docBase + "E401",
	},
}

// Lookup returns the template for a registered code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
