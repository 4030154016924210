package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSignIn_ValidPayloadMatchesInput(t *testing.T) {
	input := FormState{"email": "user@example.com", "password": "Abcdef1!"}

	result := SignIn().Validate(input)
	if !result.Valid() {
		t.Fatalf("expected valid result, got errors %v", result.Errors)
	}
	if diff := cmp.Diff(input, result.Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestSignIn_InvalidEmailAndShortPassword(t *testing.T) {
	result := SignIn().Validate(FormState{"email": "not-an-email", "password": "short"})
	if result.Valid() {
		t.Fatalf("expected invalid result")
	}
	if result.Payload != nil {
		t.Fatalf("invalid result must not carry a payload: %v", result.Payload)
	}

	want := map[string]string{
		"email":    MessageInvalidEmail,
		"password": MessagePasswordTooShort,
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSignIn_PasswordRulesStopAtFirstFailure(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     string
	}{
		{name: "too short without special", password: "abc", want: MessagePasswordTooShort},
		{name: "too short with special", password: "ab!", want: MessagePasswordTooShort},
		{name: "too long without special", password: strings.Repeat("a", 21), want: MessagePasswordTooLong},
		{name: "too long with special", password: strings.Repeat("a", 20) + "!", want: MessagePasswordTooLong},
		{name: "no special character", password: "abcdefgh1", want: MessagePasswordSpecial},
		{name: "empty", password: "", want: MessagePasswordTooShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := SignIn().Validate(FormState{"email": "user@example.com", "password": tc.password})
			if got := result.Error("password"); got != tc.want {
				t.Fatalf("password message: want %q, got %q", tc.want, got)
			}
			if _, ok := result.Errors["email"]; ok {
				t.Fatalf("email should be valid, got %q", result.Errors["email"])
			}
			if len(result.Errors) != 1 {
				t.Fatalf("expected exactly one error, got %v", result.Errors)
			}
		})
	}
}

func TestSignIn_PasswordBoundsAreInclusive(t *testing.T) {
	for _, password := range []string{"abcdefg!", strings.Repeat("a", 19) + "!"} {
		result := SignIn().Validate(FormState{"email": "user@example.com", "password": password})
		if !result.Valid() {
			t.Fatalf("password %q (len %d) should be valid, got %v", password, len(password), result.Errors)
		}
	}
}

func TestSignIn_EverySpecialCharacterAccepted(t *testing.T) {
	for _, r := range SpecialCharacters {
		password := "abcdefg" + string(r)
		result := SignIn().Validate(FormState{"email": "user@example.com", "password": password})
		if !result.Valid() {
			t.Fatalf("special character %q not accepted: %v", r, result.Errors)
		}
	}
}

func TestSignIn_EmailErrorIndependentOfPassword(t *testing.T) {
	result := SignIn().Validate(FormState{"email": "user@", "password": "Abcdef1!"})
	want := map[string]string{"email": MessageInvalidEmail}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSignIn_NormalizesState(t *testing.T) {
	result := SignIn().Validate(FormState{
		"email":       "user@example.com",
		"password":    "Abcdef1!",
		"remember-me": "on",
	})
	if !result.Valid() {
		t.Fatalf("expected valid result, got %v", result.Errors)
	}
	want := FormState{"email": "user@example.com", "password": "Abcdef1!"}
	if diff := cmp.Diff(want, result.Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	missing := SignIn().Validate(FormState{})
	if diff := cmp.Diff(map[string]string{
		"email":    MessageInvalidEmail,
		"password": MessagePasswordTooShort,
	}, missing.Errors); diff != "" {
		t.Fatalf("missing fields mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	input := FormState{"email": "user@example.com", "password": "Abcdef1!", "extra": "x"}
	before := input.Clone()

	SignIn().Validate(input)

	if diff := cmp.Diff(before, input); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestSignUp_ConfirmPasswordMustMatch(t *testing.T) {
	base := FormState{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "Engine#1843",
	}

	cases := []struct {
		name    string
		confirm string
		want    map[string]string
	}{
		{name: "matching", confirm: "Engine#1843", want: nil},
		{name: "empty", confirm: "", want: map[string]string{"confirmPassword": "Please confirm your password"}},
		{name: "different", confirm: "Engine#1844", want: map[string]string{"confirmPassword": "Passwords do not match"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := base.Clone()
			state["confirmPassword"] = tc.confirm
			result := SignUp().Validate(state)
			if tc.want == nil {
				if !result.Valid() {
					t.Fatalf("expected valid, got %v", result.Errors)
				}
				return
			}
			if diff := cmp.Diff(tc.want, result.Errors); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSignUp_NameBounds(t *testing.T) {
	state := FormState{
		"email":           "ada@example.com",
		"password":        "Engine#1843",
		"confirmPassword": "Engine#1843",
	}

	state["name"] = "A"
	if got := SignUp().Validate(state).Error("name"); got != "Name must be at least 2 characters long" {
		t.Fatalf("unexpected short name message %q", got)
	}
	state["name"] = strings.Repeat("n", 51)
	if got := SignUp().Validate(state).Error("name"); got != "Name must not exceed 50 characters" {
		t.Fatalf("unexpected long name message %q", got)
	}
}

func TestSchema_FieldNamesFollowDeclarationOrder(t *testing.T) {
	want := []string{"name", "email", "password", "confirmPassword"}
	if diff := cmp.Diff(want, SignUp().FieldNames()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	field, ok := SignIn().Field("password")
	if !ok || field.Format != FormatPassword {
		t.Fatalf("expected password field with password format, got %+v (ok=%v)", field, ok)
	}
	if _, ok := SignIn().Field("name"); ok {
		t.Fatalf("sign-in schema should not declare name")
	}
}

func TestNilSchema_ValidatesEmptyState(t *testing.T) {
	var s *Schema
	result := s.Validate(FormState{"anything": "x"})
	if !result.Valid() {
		t.Fatalf("nil schema should validate, got %v", result.Errors)
	}
	if len(result.Payload) != 0 {
		t.Fatalf("expected empty payload, got %v", result.Payload)
	}
}
