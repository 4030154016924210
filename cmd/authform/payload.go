package main

import (
	"fmt"
	"io"

	"github.com/goliatone/go-authform/pkg/schema"
)

// readPayload decodes a YAML or JSON payload from path, or from stdin when
// path is empty or "-".
func readPayload(path string, stdin io.Reader) (schema.FormState, error) {
	if path == "" || path == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("payload: read stdin: %w", err)
		}
		doc, err := schema.NewDocument(schema.SourceFromBytes("stdin"), raw)
		if err != nil {
			return nil, err
		}
		return doc.State()
	}
	doc, err := schema.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return doc.State()
}
