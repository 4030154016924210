package schema

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// SpecialCharacters lists the characters accepted by the password rule.
const SpecialCharacters = `!@#$%^&*(),.?":{}|<>`

const (
	MessageInvalidEmail     = "invalid email"
	MessagePasswordTooShort = "Password must be 8 characters long"
	MessagePasswordTooLong  = "Password must not exceed 20 characters"
	MessagePasswordSpecial  = "Password must contain at least one special character"
)

var (
	emailPattern   = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// FormatEmailRule requires a local@domain.tld shaped value.
func FormatEmailRule(message string) Rule {
	return Rule{Kind: RuleFormatEmail, Message: message}
}

// MinLength requires at least n characters.
func MinLength(n int, message string) Rule {
	return Rule{Kind: RuleMinLength, Length: n, Message: message}
}

// MaxLength allows at most n characters.
func MaxLength(n int, message string) Rule {
	return Rule{Kind: RuleMaxLength, Length: n, Message: message}
}

// Pattern requires the value to contain a match of expr. It panics when expr
// does not compile, mirroring regexp.MustCompile for static declarations.
func Pattern(expr, message string) Rule {
	return Rule{Kind: RulePattern, Pattern: regexp.MustCompile(expr), Message: message}
}

// PatternRegexp is Pattern for a pre-compiled expression.
func PatternRegexp(re *regexp.Regexp, message string) Rule {
	return Rule{Kind: RulePattern, Pattern: re, Message: message}
}

// MatchesField requires the value to equal the value of another field.
func MatchesField(field, message string) Rule {
	return Rule{Kind: RuleMatchesField, Field: strings.TrimSpace(field), Message: message}
}

// Check reports whether value satisfies the rule. state supplies sibling
// values for cross-field rules.
func (r Rule) Check(value string, state FormState) bool {
	switch r.Kind {
	case RuleFormatEmail:
		return IsEmail(value)
	case RuleMinLength:
		return utf8.RuneCountInString(value) >= r.Length
	case RuleMaxLength:
		return utf8.RuneCountInString(value) <= r.Length
	case RulePattern:
		if r.Pattern == nil {
			return false
		}
		return r.Pattern.MatchString(value)
	case RuleMatchesField:
		return value == state[r.Field]
	default:
		return false
	}
}

// Describe renders the rule for diagnostics, e.g. "minLength(8)".
func (r Rule) Describe() string {
	switch r.Kind {
	case RuleMinLength, RuleMaxLength:
		return fmt.Sprintf("%s(%d)", r.Kind, r.Length)
	case RulePattern:
		if r.Pattern == nil {
			return string(r.Kind)
		}
		return fmt.Sprintf("%s(%s)", r.Kind, r.Pattern.String())
	case RuleMatchesField:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Field)
	default:
		return string(r.Kind)
	}
}

// IsEmail reports whether value has the local@domain.tld shape: no leading
// dot, no consecutive dots, hyphenated alphanumeric domain labels and an
// alphabetic top-level domain of two or more letters.
func IsEmail(value string) bool {
	if value == "" || strings.HasPrefix(value, ".") || strings.Contains(value, "..") {
		return false
	}
	return emailPattern.MatchString(value)
}
