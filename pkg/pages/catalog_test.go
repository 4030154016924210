package pages

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuiltInPagesBindSchemaFields(t *testing.T) {
	for _, page := range []Page{SignIn(), SignUp()} {
		if err := page.Validate(); err != nil {
			t.Fatalf("page %s: %v", page.ID, err)
		}
	}
}

func TestSignIn_Chrome(t *testing.T) {
	page := SignIn()
	if page.Route != "/sign-in" || page.Heading != "Welcome back" {
		t.Fatalf("unexpected sign-in chrome: %+v", page)
	}
	if !page.RememberMe || page.Forgot == nil || page.Forgot.Label != "Forgot password?" {
		t.Fatalf("sign-in should offer remember-me and forgot password")
	}
	if page.Footer.Link.Href != SignUpRoute {
		t.Fatalf("sign-in footer should link to sign-up, got %q", page.Footer.Link.Href)
	}
	password, ok := page.Input("password")
	if !ok || !password.Masked() {
		t.Fatalf("password input should be masked: %+v", password)
	}
}

func TestPage_Icons(t *testing.T) {
	want := []string{IconMessages, IconMail, IconLock, IconEye, IconEyeOff}
	if diff := cmp.Diff(want, SignIn().Icons()); diff != "" {
		t.Fatalf("icons mismatch (-want +got):\n%s", diff)
	}
}

func TestPage_ValidateRejectsMismatchedInputs(t *testing.T) {
	page := SignIn()
	page.Inputs = page.Inputs[:1]
	if err := page.Validate(); err == nil || !strings.Contains(err.Error(), "binds 1 inputs") {
		t.Fatalf("expected input count error, got %v", err)
	}

	page = SignIn()
	page.Inputs[0], page.Inputs[1] = page.Inputs[1], page.Inputs[0]
	if err := page.Validate(); err == nil {
		t.Fatalf("expected ordering error")
	}

	page = SignIn()
	page.Schema = nil
	if err := page.Validate(); err == nil {
		t.Fatalf("expected missing schema error")
	}
}

func TestRegistry(t *testing.T) {
	registry := Default()

	ids := make([]string, 0)
	for _, page := range registry.All() {
		ids = append(ids, page.ID)
	}
	if diff := cmp.Diff([]string{"sign-in", "sign-up"}, ids); diff != "" {
		t.Fatalf("registry order mismatch (-want +got):\n%s", diff)
	}

	if _, err := registry.Get("sign-up"); err != nil {
		t.Fatalf("get sign-up: %v", err)
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatalf("expected error for missing page")
	}
	if err := registry.Register(SignIn()); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	clash := SignUp()
	clash.ID = "register"
	if err := registry.Register(clash); err == nil || !strings.Contains(err.Error(), "already bound") {
		t.Fatalf("expected duplicate route error, got %v", err)
	}
}
