package domain

import (
	"errors"
	"strings"
	"time"
)

// ClaimJobTitle is the claim type attached to every account at registration.
const ClaimJobTitle = "JobTitle"

// RoleAdmin may create and delete map lines.
const RoleAdmin = "Admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleExists         = errors.New("role already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidToken       = errors.New("invalid token")
	ErrConfiguration      = errors.New("configuration fault")
)

// Claim is a named attribute attached to a user account and carried into tokens.
type Claim struct {
	Type  string `json:"type" bson:"type"`
	Value string `json:"value" bson:"value"`
}

// UserAccount models a registered identity. The password hash is owned by the
// credential store and never leaves it through the API.
type UserAccount struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Roles          []string  `json:"roles,omitempty"`
	Claims         []Claim   `json:"claims,omitempty"`
	EmailConfirmed bool      `json:"emailConfirmed"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Role is a named authorization group.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NormalizeName returns the form used for uniqueness checks on usernames and
// role names.
func NormalizeName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
