package pages

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-authform/pkg/schema"
)

// Icon names referenced by the built-in pages.
const (
	IconMessages = "messages"
	IconMail     = "mail"
	IconLock     = "lock"
	IconUser     = "user"
	IconEye      = "eye"
	IconEyeOff   = "eye-off"
)

const (
	SignInRoute = "/sign-in"
	SignUpRoute = "/sign-up"
)

// RememberField is the form key of the "Remember me" checkbox. It is page
// chrome and never part of the validated FormState.
const RememberField = "remember"

// SignIn describes the sign-in page.
func SignIn() Page {
	return Page{
		ID:       schema.SignInName,
		Route:    SignInRoute,
		Title:    "Sign in",
		Heading:  "Welcome back",
		Subtitle: "Please sign in to your account",
		Icon:     IconMessages,
		Inputs: []Input{
			emailInput(),
			{
				Name:         schema.FieldPassword,
				Type:         string(schema.FormatPassword),
				Label:        "Password",
				Placeholder:  "Enter your password",
				Icon:         IconLock,
				Autocomplete: "current-password",
			},
		},
		RememberMe:  true,
		Forgot:      &Link{Label: "Forgot password?", Href: "#"},
		SubmitLabel: "Sign in",
		Footer: Footer{
			Text: "Don't have an account?",
			Link: Link{Label: "Sign up", Href: SignUpRoute},
		},
		Schema: schema.SignIn(),
	}
}

// SignUp describes the sign-up page.
func SignUp() Page {
	return Page{
		ID:       schema.SignUpName,
		Route:    SignUpRoute,
		Title:    "Sign up",
		Heading:  "Create your account",
		Subtitle: "Start messaging in less than a minute",
		Icon:     IconMessages,
		Inputs: []Input{
			{
				Name:         schema.FieldName,
				Type:         string(schema.FormatText),
				Label:        "Full name",
				Placeholder:  "Enter your name",
				Icon:         IconUser,
				Autocomplete: "name",
			},
			emailInput(),
			{
				Name:         schema.FieldPassword,
				Type:         string(schema.FormatPassword),
				Label:        "Password",
				Placeholder:  "Create a password",
				Icon:         IconLock,
				Autocomplete: "new-password",
			},
			{
				Name:         schema.FieldConfirmPassword,
				Type:         string(schema.FormatPassword),
				Label:        "Confirm password",
				Placeholder:  "Repeat your password",
				Icon:         IconLock,
				Autocomplete: "new-password",
			},
		},
		SubmitLabel: "Sign up",
		Footer: Footer{
			Text: "Already have an account?",
			Link: Link{Label: "Sign in", Href: SignInRoute},
		},
		Schema: schema.SignUp(),
	}
}

func emailInput() Input {
	return Input{
		Name:         schema.FieldEmail,
		Type:         string(schema.FormatEmail),
		Label:        "Email address",
		Placeholder:  "Enter your email",
		Icon:         IconMail,
		Autocomplete: "email",
	}
}

// Validate checks that the inputs bind exactly the schema fields, in the
// same order.
func (p Page) Validate() error {
	if p.ID == "" {
		return errors.New("pages: page id is required")
	}
	if p.Schema == nil {
		return fmt.Errorf("pages: page %q has no schema", p.ID)
	}
	names := p.Schema.FieldNames()
	if len(names) != len(p.Inputs) {
		return fmt.Errorf("pages: page %q binds %d inputs for %d schema fields", p.ID, len(p.Inputs), len(names))
	}
	for i, name := range names {
		if p.Inputs[i].Name != name {
			return fmt.Errorf("pages: page %q input %d is %q, schema declares %q", p.ID, i, p.Inputs[i].Name, name)
		}
	}
	return nil
}
