package ports

import "context"

// AuthResult is returned by a successful login.
type AuthResult struct {
	Username string
	Email    string
	Token    string
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
	JobTitle string
}

// RegisterResult is returned by a successful registration.
type RegisterResult struct {
	Succeeded bool
	UserID    string
}

// ConfirmEmailInput carries an email confirmation request.
type ConfirmEmailInput struct {
	UserID string
	Token  string
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	ConfirmEmail(ctx context.Context, input ConfirmEmailInput) error
}
