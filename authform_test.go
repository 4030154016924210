package authform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-authform/pkg/form"
	"github.com/goliatone/go-authform/pkg/render"
)

func TestDefaultRenderers_NegotiatesHTMLAndJSON(t *testing.T) {
	registry, err := DefaultRenderers()
	if err != nil {
		t.Fatalf("default renderers: %v", err)
	}

	html, err := registry.Negotiate("")
	if err != nil {
		t.Fatalf("negotiate fallback: %v", err)
	}
	if html.Name() != "vanilla" {
		t.Fatalf("expected vanilla fallback, got %s", html.Name())
	}
	jsonRenderer, err := registry.Negotiate("application/json")
	if err != nil {
		t.Fatalf("negotiate json: %v", err)
	}
	if jsonRenderer.Name() != "json" {
		t.Fatalf("expected json renderer, got %s", jsonRenderer.Name())
	}
}

func TestNewController_ValidatesPageSchema(t *testing.T) {
	var got FormState
	ctrl := NewController(SignIn(),
		form.WithDispatch(form.Synchronous),
		form.WithSubmitter(SubmitterFunc(func(_ context.Context, _ string, payload FormState) error {
			got = payload
			return nil
		})),
	)
	ctrl.Fill(FormState{"email": "user@example.com", "password": "Abcdef1!"})

	result := ctrl.Submit(context.Background())
	if !result.Valid() {
		t.Fatalf("expected valid result, got %v", result.Errors)
	}
	if got["email"] != "user@example.com" {
		t.Fatalf("submitter did not receive payload, got %v", got)
	}
}

func TestSignUp_RendersThroughFacade(t *testing.T) {
	registry, err := DefaultRenderers()
	if err != nil {
		t.Fatalf("default renderers: %v", err)
	}
	renderer, err := registry.Get("vanilla")
	if err != nil {
		t.Fatalf("get vanilla: %v", err)
	}
	out, err := renderer.Render(context.Background(), SignUp(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `name="confirmPassword"`) {
		t.Fatalf("expected confirm password input in output")
	}
}

func TestEmbeddedTemplatesAndIcons(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
	set, err := EmbeddedIcons()
	if err != nil {
		t.Fatalf("icons: %v", err)
	}
	if _, ok := set.Markup("lock"); !ok {
		t.Fatalf("expected lock icon")
	}
	if Pages().All()[0].ID != SignIn().ID {
		t.Fatalf("expected sign-in first")
	}
}
