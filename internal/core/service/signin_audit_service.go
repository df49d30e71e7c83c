package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

var errEmptyUsername = errors.New("sign-in event without username")

type signInAuditService struct {
	repo ports.SignInEventRepository
	log  zerolog.Logger
}

// NewSignInAuditService returns a SignInAuditor that writes every event to the
// sign-in audit trail.
func NewSignInAuditService(repo ports.SignInEventRepository, log zerolog.Logger) ports.SignInAuditor {
	return &signInAuditService{repo: repo, log: log}
}

// Record persists a single sign-in event.
func (s *signInAuditService) Record(ctx context.Context, event domain.SignInEvent) error {
	if event.Username == "" {
		return fmt.Errorf("record sign-in: %w", errEmptyUsername)
	}
	if event.OccurredAt.IsZero() {
		return fmt.Errorf("record sign-in %s: missing timestamp", event.Username)
	}

	if err := s.repo.InsertSignInEvent(ctx, event); err != nil {
		return fmt.Errorf("record sign-in: %w", err)
	}

	if event.Outcome == domain.SignInLockedOut {
		s.log.Warn().Str("username", event.Username).Msg("sign-in attempt on locked account")
	} else {
		s.log.Debug().
			Str("username", event.Username).
			Str("outcome", string(event.Outcome)).
			Msg("sign-in recorded")
	}
	return nil
}
