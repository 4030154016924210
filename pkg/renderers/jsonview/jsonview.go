// Package jsonview renders pages as JSON documents for API clients.
package jsonview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-authform/pkg/pages"
	"github.com/goliatone/go-authform/pkg/render"
)

// Document is the JSON shape of a rendered page.
type Document struct {
	Page       pages.Page        `json:"page"`
	Values     map[string]string `json:"values"`
	Errors     map[string]string `json:"errors,omitempty"`
	FormErrors []string          `json:"formErrors,omitempty"`
	Remember   bool              `json:"remember,omitempty"`
	Theme      *Theme            `json:"theme,omitempty"`
	RequestID  string            `json:"requestId,omitempty"`
}

// Theme is the subset of the theme configuration useful to API clients.
type Theme struct {
	Name    string            `json:"name,omitempty"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty"`
}

type Option func(*Renderer)

// WithIndent pretty-prints output with the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render encodes the page and its per-mount state. Values of masked inputs
// are never included.
func (r *Renderer) Render(ctx context.Context, page pages.Page, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := Document{
		Page:       page,
		Values:     make(map[string]string, len(page.Inputs)),
		Errors:     opts.Errors,
		FormErrors: opts.FormErrors,
		Remember:   opts.Remember,
		RequestID:  opts.RequestID,
	}
	for _, input := range page.Inputs {
		if input.Masked() {
			continue
		}
		doc.Values[input.Name] = opts.Values[input.Name]
	}
	if opts.Theme != nil {
		doc.Theme = &Theme{
			Name:    opts.Theme.Theme,
			Variant: opts.Theme.Variant,
			Tokens:  opts.Theme.Tokens,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if r.indent != "" {
		enc.SetIndent("", r.indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("json renderer: encode page %q: %w", page.ID, err)
	}
	return buf.Bytes(), nil
}
