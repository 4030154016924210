// Package authform renders sign-in and sign-up pages, validates their
// submissions and hands valid payloads to a pluggable submitter. This file
// re-exports the types most callers need.
package authform

import (
	"fmt"

	"github.com/goliatone/go-authform/pkg/form"
	"github.com/goliatone/go-authform/pkg/pages"
	"github.com/goliatone/go-authform/pkg/render"
	"github.com/goliatone/go-authform/pkg/renderers/jsonview"
	"github.com/goliatone/go-authform/pkg/renderers/vanilla"
	"github.com/goliatone/go-authform/pkg/schema"
)

// Page describes a route-bound form page.
type Page = pages.Page

// FormState maps field names to values.
type FormState = schema.FormState

// Result is the outcome of validating a FormState.
type Result = schema.Result

// Submitter receives valid payloads.
type Submitter = form.Submitter

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc = form.SubmitterFunc

// RenderOptions carry per-mount values and errors to renderers.
type RenderOptions = render.RenderOptions

// SignIn returns the sign-in page.
func SignIn() Page { return pages.SignIn() }

// SignUp returns the sign-up page.
func SignUp() Page { return pages.SignUp() }

// Pages returns a registry holding both built-in pages.
func Pages() *pages.Registry { return pages.Default() }

// NewController mounts a form controller for page.
func NewController(page Page, options ...form.Option) *form.Controller {
	return form.NewController(page.Schema, options...)
}

// DefaultRenderers registers the HTML renderer, which is also the
// negotiation fallback, and the JSON renderer.
func DefaultRenderers(options ...vanilla.Option) (*render.Registry, error) {
	html, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("authform: %w", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, fmt.Errorf("authform: %w", err)
	}
	if err := registry.Register(jsonview.New()); err != nil {
		return nil, fmt.Errorf("authform: %w", err)
	}
	return registry, nil
}
