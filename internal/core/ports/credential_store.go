package ports

import (
	"context"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
)

// CredentialStore persists user accounts and owns password hashing and sign-in
// bookkeeping. Implementations enforce username uniqueness.
type CredentialStore interface {
	// FindByUsername returns domain.ErrUserNotFound when no account matches.
	FindByUsername(ctx context.Context, username string) (*domain.UserAccount, error)
	// CreateUser hashes password and stores the account. Rejections are reported
	// as *domain.RegistrationError.
	CreateUser(ctx context.Context, user *domain.UserAccount, password string) error
	CheckPassword(ctx context.Context, user *domain.UserAccount, password string) (bool, error)
	GetRoles(ctx context.Context, user *domain.UserAccount) ([]string, error)
	GetClaims(ctx context.Context, user *domain.UserAccount) ([]domain.Claim, error)
	AddToRole(ctx context.Context, user *domain.UserAccount, role string) error
	AddClaim(ctx context.Context, user *domain.UserAccount, claim domain.Claim) error
}

// RoleStore persists role definitions.
type RoleStore interface {
	RoleExists(ctx context.Context, name string) (bool, error)
	// CreateRole returns domain.ErrRoleExists if the name is already taken.
	CreateRole(ctx context.Context, name string) error
}

// Transactor runs fn inside a single store transaction. The context passed to
// fn must be used for every store call that belongs to the transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
