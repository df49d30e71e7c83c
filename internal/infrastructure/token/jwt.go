// Package token issues and verifies HS256 access tokens.
package token

import (
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

const (
	defaultTTL = 24 * time.Hour

	claimEmail = "email"
	claimRole  = "role"
)

// reservedClaims may not be overwritten by user claims.
var reservedClaims = map[string]struct{}{
	"iss": {}, "sub": {}, "aud": {}, "exp": {}, "nbf": {}, "iat": {}, "jti": {},
	claimEmail: {}, claimRole: {},
}

// Config holds the signing settings.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// JWTIssuer signs and verifies access tokens with a shared secret.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a JWTIssuer.
type Option func(*JWTIssuer)

// WithClock fixes the issue time, which makes tokens reproducible.
func WithClock(now func() time.Time) Option {
	return func(i *JWTIssuer) { i.now = now }
}

// NewJWTIssuer fails with domain.ErrConfiguration when no secret is set.
func NewJWTIssuer(cfg Config, opts ...Option) (*JWTIssuer, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token issuer: signing key is empty: %w", domain.ErrConfiguration)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	i := &JWTIssuer{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// GenerateToken encodes the username as subject, the email, every role and
// every claim. Claims sharing a type are encoded as an array.
func (i *JWTIssuer) GenerateToken(user *domain.UserAccount, roles []string, claims []domain.Claim) (string, error) {
	now := i.now().UTC().Truncate(time.Second)

	mc := jwt.MapClaims{
		"sub":      user.Username,
		claimEmail: user.Email,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}
	if i.issuer != "" {
		mc["iss"] = i.issuer
	}
	switch len(roles) {
	case 0:
	case 1:
		mc[claimRole] = roles[0]
	default:
		mc[claimRole] = append([]string(nil), roles...)
	}

	grouped := make(map[string][]string)
	for _, c := range claims {
		if _, reserved := reservedClaims[c.Type]; reserved || c.Type == "" {
			continue
		}
		grouped[c.Type] = append(grouped[c.Type], c.Value)
	}
	for typ, values := range grouped {
		if len(values) == 1 {
			mc[typ] = values[0]
		} else {
			mc[typ] = values
		}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, expiry and issuer and decodes the token.
func (i *JWTIssuer) Verify(tokenString string) (*ports.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, mc, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	out := &ports.TokenClaims{}
	out.Subject, _ = mc.GetSubject()
	out.Email, _ = mc[claimEmail].(string)
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	out.Roles = stringValues(mc[claimRole])

	types := make([]string, 0, len(mc))
	for typ := range mc {
		if _, reserved := reservedClaims[typ]; !reserved {
			types = append(types, typ)
		}
	}
	sort.Strings(types)
	for _, typ := range types {
		for _, v := range stringValues(mc[typ]) {
			out.Claims = append(out.Claims, domain.Claim{Type: typ, Value: v})
		}
	}
	return out, nil
}

func stringValues(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
