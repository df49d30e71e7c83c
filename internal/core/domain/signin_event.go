package domain

import "time"

// SignInOutcome classifies a password check.
type SignInOutcome string

const (
	SignInSucceeded   SignInOutcome = "success"
	SignInBadPassword SignInOutcome = "bad_password"
	SignInLockedOut   SignInOutcome = "locked_out"
)

// SignInEvent records a single password check performed by the credential store.
type SignInEvent struct {
	Username   string
	Outcome    SignInOutcome
	OccurredAt time.Time
}

// Succeeded reports whether the password check passed.
func (e SignInEvent) Succeeded() bool {
	return e.Outcome == SignInSucceeded
}
