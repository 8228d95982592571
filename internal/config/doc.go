// Package config loads query defaults and server settings from a file.
//
// The file may be JSON (vquery.json), YAML (vquery.yaml / vquery.yml) or
// TOML (vquery.toml); the format follows the extension. Durations are
// strings accepted by time.ParseDuration.
//
//	{
//	  "shared":  {"retry": 2, "refetchOnWindowFocus": false},
//	  "queries": {"staleTime": "30s", "suspense": true},
//	  "mutations": {"retry": 0},
//	  "server":  {"addr": ":8080", "probePath": "/probe"}
//	}
package config
