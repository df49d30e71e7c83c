package domain

import "strings"

// Reason codes reported when registration is rejected.
const (
	CodeDuplicateUserName               = "DuplicateUserName"
	CodeInvalidUserName                 = "InvalidUserName"
	CodeInvalidEmail                    = "InvalidEmail"
	CodePasswordTooShort                = "PasswordTooShort"
	CodePasswordRequiresDigit           = "PasswordRequiresDigit"
	CodePasswordRequiresLower           = "PasswordRequiresLower"
	CodePasswordRequiresUpper           = "PasswordRequiresUpper"
	CodePasswordRequiresNonAlphanumeric = "PasswordRequiresNonAlphanumeric"
	CodeRoleAssignmentFailed            = "RoleAssignmentFailed"
	CodeClaimAssignmentFailed           = "ClaimAssignmentFailed"
	CodeInvalidRequest                  = "InvalidRequest"
	CodeDefaultError                    = "DefaultError"
)

// Reason describes why a registration step was rejected.
type Reason struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// RegistrationError carries the reasons a credential store refused to create an
// account. Reasons are passed to the client as reported.
type RegistrationError struct {
	Reasons []Reason
	// Err is the underlying store failure, if any.
	Err error
}

func (e *RegistrationError) Unwrap() error { return e.Err }

func (e *RegistrationError) Error() string {
	if len(e.Reasons) == 0 {
		return "registration failed"
	}
	descs := make([]string, 0, len(e.Reasons))
	for _, r := range e.Reasons {
		descs = append(descs, r.Description)
	}
	return "registration failed: " + strings.Join(descs, "; ")
}

// NewRegistrationError builds a RegistrationError from a single reason.
func NewRegistrationError(code, description string) *RegistrationError {
	return &RegistrationError{Reasons: []Reason{{Code: code, Description: description}}}
}
