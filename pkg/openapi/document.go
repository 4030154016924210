package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-authform/pkg/schema"
)

// ErrUnknownOperation reports an operation id missing from the document.
var ErrUnknownOperation = errors.New("openapi: unknown operation")

// Operation summarises one path/method pair of a document.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Document wraps a validated OpenAPI document.
type Document struct {
	spec *openapi3.T
}

// NewDocument wraps spec. The spec is expected to be validated already.
func NewDocument(spec *openapi3.T) (*Document, error) {
	if spec == nil {
		return nil, errors.New("openapi: document is nil")
	}
	return &Document{spec: spec}, nil
}

// Load parses raw JSON or YAML and validates it.
func Load(ctx context.Context, raw []byte) (*Document, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: raw document is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return &Document{spec: spec}, nil
}

// Spec exposes the underlying kin-openapi document.
func (d *Document) Spec() *openapi3.T {
	return d.spec
}

// MarshalJSON encodes the document.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.spec.MarshalJSON()
}

// Operations lists every operation sorted by path then method.
func (d *Document) Operations() []Operation {
	var ops []Operation
	for path, item := range d.spec.Paths.Map() {
		for method, op := range item.Operations() {
			ops = append(ops, Operation{
				ID:      op.OperationID,
				Method:  strings.ToUpper(method),
				Path:    path,
				Summary: op.Summary,
			})
		}
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path == ops[j].Path {
			return ops[i].Method < ops[j].Method
		}
		return ops[i].Path < ops[j].Path
	})
	return ops
}

// ValidatePayload checks state against the JSON request body schema of the
// operation identified by operationID.
func (d *Document) ValidatePayload(operationID string, state schema.FormState) error {
	op := d.operation(operationID)
	if op == nil {
		return fmt.Errorf("%w: %s", ErrUnknownOperation, operationID)
	}
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return fmt.Errorf("openapi: operation %s has no request body", operationID)
	}
	media := op.RequestBody.Value.Content.Get(mediaJSON)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return fmt.Errorf("openapi: operation %s has no %s schema", operationID, mediaJSON)
	}

	payload := make(map[string]any, len(state))
	for key, value := range state {
		payload[key] = value
	}
	if err := media.Schema.Value.VisitJSON(payload); err != nil {
		return fmt.Errorf("openapi: %s payload: %w", operationID, err)
	}
	return nil
}

func (d *Document) operation(id string) *openapi3.Operation {
	for _, item := range d.spec.Paths.Map() {
		for _, op := range item.Operations() {
			if op.OperationID == id {
				return op
			}
		}
	}
	return nil
}

// SubmitOperationID is the id Build assigns to a page's POST operation.
func SubmitOperationID(pageID string) string {
	return pageID + ".submit"
}

// ViewOperationID is the id Build assigns to a page's GET operation.
func ViewOperationID(pageID string) string {
	return pageID + ".view"
}
