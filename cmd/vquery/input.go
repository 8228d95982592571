package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/vango-dev/vquery/internal/errors"
)

// readInput returns the contents of path, or of stdin when path is "" or "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// parseJSON decodes a single JSON document. useNumber keeps numeric
// literals exact.
func parseJSON(data []byte, useNumber bool) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if useNumber {
		dec.UseNumber()
	}

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.New("E401").Wrap(err)
	}
	if dec.More() {
		return nil, errors.New("E401").WithDetail("trailing data after document")
	}
	return v, nil
}
