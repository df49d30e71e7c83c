package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

// AuthService implements login, registration and email confirmation on top of
// the credential store, role store and token issuer.
type AuthService struct {
	users  ports.CredentialStore
	roles  ports.RoleStore
	tokens ports.TokenIssuer
	tx     ports.Transactor
	logger zerolog.Logger
	now    func() time.Time
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithTransactor makes registration run as a single store transaction.
// Without it the registration steps are applied one after another and a
// failure after user creation leaves the account in place.
func WithTransactor(tx ports.Transactor) AuthOption {
	return func(s *AuthService) { s.tx = tx }
}

// WithClock overrides the time source used for account timestamps.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(
	users ports.CredentialStore,
	roles ports.RoleStore,
	tokens ports.TokenIssuer,
	logger zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		users:  users,
		roles:  roles,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the credentials and issues an access token. An unknown
// username and a wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: find user: %w", err)
	}

	ok, err := s.users.CheckPassword(ctx, user, password)
	if err != nil {
		return nil, fmt.Errorf("login: check password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	roles, err := s.users.GetRoles(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("login: get roles: %w", err)
	}
	claims, err := s.users.GetClaims(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("login: get claims: %w", err)
	}

	token, err := s.tokens.GenerateToken(user, roles, claims)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Int("roles", len(roles)).Msg("user signed in")

	return &ports.AuthResult{
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}, nil
}

// Register creates the role if needed, creates the account, assigns the role
// and attaches the JobTitle claim.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	if in.Username == "" || in.Password == "" || in.Role == "" {
		return nil, domain.NewRegistrationError(domain.CodeInvalidRequest, "Username, password and role are required.")
	}

	var userID string
	register := func(ctx context.Context) error {
		if err := s.ensureRole(ctx, in.Role); err != nil {
			return err
		}

		now := s.now().UTC()
		user := &domain.UserAccount{
			ID:        uuid.NewString(),
			Username:  in.Username,
			Email:     in.Email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.users.CreateUser(ctx, user, in.Password); err != nil {
			return err
		}

		if err := s.users.AddToRole(ctx, user, in.Role); err != nil {
			s.logger.Error().Err(err).Str("username", user.Username).Str("role", in.Role).Msg("role assignment failed")
			return &domain.RegistrationError{
				Reasons: []domain.Reason{{
					Code:        domain.CodeRoleAssignmentFailed,
					Description: fmt.Sprintf("User '%s' could not be added to role '%s'.", user.Username, in.Role),
				}},
				Err: err,
			}
		}

		claim := domain.Claim{Type: domain.ClaimJobTitle, Value: in.JobTitle}
		if err := s.users.AddClaim(ctx, user, claim); err != nil {
			s.logger.Error().Err(err).Str("username", user.Username).Msg("claim attachment failed")
			return &domain.RegistrationError{
				Reasons: []domain.Reason{{
					Code:        domain.CodeClaimAssignmentFailed,
					Description: fmt.Sprintf("Claim '%s' could not be added to user '%s'.", claim.Type, user.Username),
				}},
				Err: err,
			}
		}

		userID = user.ID
		return nil
	}

	var err error
	if s.tx != nil {
		err = s.tx.WithinTransaction(ctx, register)
	} else {
		err = register(ctx)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", in.Username).Str("role", in.Role).Msg("user registered")
	return &ports.RegisterResult{Succeeded: true, UserID: userID}, nil
}

// ConfirmEmail acknowledges every request without verifying the token.
func (s *AuthService) ConfirmEmail(ctx context.Context, in ports.ConfirmEmailInput) error {
	s.logger.Debug().Str("user_id", in.UserID).Msg("email confirmation acknowledged")
	return nil
}

func (s *AuthService) ensureRole(ctx context.Context, role string) error {
	exists, err := s.roles.RoleExists(ctx, role)
	if err != nil {
		return fmt.Errorf("register: check role: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.roles.CreateRole(ctx, role); err != nil && !errors.Is(err, domain.ErrRoleExists) {
		return fmt.Errorf("register: create role: %w", err)
	}
	return nil
}
