package schema

const (
	SignInName = "sign-in"
	SignUpName = "sign-up"
)

const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// EmailField declares the shared email field.
func EmailField() Field {
	return Field{
		Name:   FieldEmail,
		Format: FormatEmail,
		Rules:  []Rule{FormatEmailRule(MessageInvalidEmail)},
	}
}

// PasswordField declares the shared password field: length bounds first, then
// the special character requirement.
func PasswordField() Field {
	return Field{
		Name:   FieldPassword,
		Format: FormatPassword,
		Rules: []Rule{
			MinLength(8, MessagePasswordTooShort),
			MaxLength(20, MessagePasswordTooLong),
			PatternRegexp(specialPattern, MessagePasswordSpecial),
		},
	}
}

// SignIn returns the sign-in schema.
func SignIn() *Schema {
	return &Schema{
		Name:   SignInName,
		Fields: []Field{EmailField(), PasswordField()},
	}
}

// SignUp returns the sign-up schema.
func SignUp() *Schema {
	return &Schema{
		Name: SignUpName,
		Fields: []Field{
			{
				Name:   FieldName,
				Format: FormatText,
				Rules: []Rule{
					MinLength(2, "Name must be at least 2 characters long"),
					MaxLength(50, "Name must not exceed 50 characters"),
				},
			},
			EmailField(),
			PasswordField(),
			{
				Name:   FieldConfirmPassword,
				Format: FormatPassword,
				Rules: []Rule{
					MinLength(1, "Please confirm your password"),
					MatchesField(FieldPassword, "Passwords do not match"),
				},
			},
		},
	}
}
