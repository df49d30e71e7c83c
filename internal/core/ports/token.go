package ports

import (
	"time"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
)

// TokenIssuer mints signed access tokens.
type TokenIssuer interface {
	GenerateToken(user *domain.UserAccount, roles []string, claims []domain.Claim) (string, error)
}

// TokenClaims is the decoded content of an access token.
type TokenClaims struct {
	Subject   string
	Email     string
	Roles     []string
	Claims    []domain.Claim
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the token grants role.
func (c *TokenClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if domain.NormalizeName(r) == domain.NormalizeName(role) {
			return true
		}
	}
	return false
}

// TokenVerifier validates and decodes access tokens.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}
