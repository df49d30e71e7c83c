package domain

import (
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// PasswordPolicy lists the character classes and length a password must satisfy.
type PasswordPolicy struct {
	MinLength       int
	RequireDigit    bool
	RequireLower    bool
	RequireUpper    bool
	RequireNonAlnum bool
}

// DefaultPasswordPolicy mirrors the stock identity rules: six characters with a
// digit, a lowercase letter, an uppercase letter and a symbol.
var DefaultPasswordPolicy = PasswordPolicy{
	MinLength:       6,
	RequireDigit:    true,
	RequireLower:    true,
	RequireUpper:    true,
	RequireNonAlnum: true,
}

// Validate returns every rule the password breaks, or nil.
func (p PasswordPolicy) Validate(password string) []Reason {
	var hasDigit, hasLower, hasUpper, hasOther bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r):
			hasOther = true
		}
	}

	var reasons []Reason
	if len([]rune(password)) < p.MinLength {
		reasons = append(reasons, Reason{
			Code:        CodePasswordTooShort,
			Description: fmt.Sprintf("Passwords must be at least %d characters.", p.MinLength),
		})
	}
	if p.RequireNonAlnum && !hasOther {
		reasons = append(reasons, Reason{
			Code:        CodePasswordRequiresNonAlphanumeric,
			Description: "Passwords must have at least one non alphanumeric character.",
		})
	}
	if p.RequireDigit && !hasDigit {
		reasons = append(reasons, Reason{
			Code:        CodePasswordRequiresDigit,
			Description: "Passwords must have at least one digit ('0'-'9').",
		})
	}
	if p.RequireLower && !hasLower {
		reasons = append(reasons, Reason{
			Code:        CodePasswordRequiresLower,
			Description: "Passwords must have at least one lowercase ('a'-'z').",
		})
	}
	if p.RequireUpper && !hasUpper {
		reasons = append(reasons, Reason{
			Code:        CodePasswordRequiresUpper,
			Description: "Passwords must have at least one uppercase ('A'-'Z').",
		})
	}
	return reasons
}

const allowedUserNameSymbols = "-._@+"

var emailValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateAccount checks the username and email of a new account.
func ValidateAccount(username, email string) []Reason {
	var reasons []Reason
	if !validUserName(username) {
		reasons = append(reasons, Reason{
			Code:        CodeInvalidUserName,
			Description: fmt.Sprintf("Username '%s' is invalid, can only contain letters or digits.", username),
		})
	}
	if err := emailValidator.Var(email, "required,email"); err != nil {
		reasons = append(reasons, Reason{
			Code:        CodeInvalidEmail,
			Description: fmt.Sprintf("Email '%s' is invalid.", email),
		})
	}
	return reasons
}

func validUserName(username string) bool {
	if username == "" {
		return false
	}
	for _, r := range username {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		ok := false
		for _, s := range allowedUserNameSymbols {
			if r == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
