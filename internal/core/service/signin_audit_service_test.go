package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
)

type stubSignInEventRepo struct {
	insertErr error
	inserted  []domain.SignInEvent
}

func (r *stubSignInEventRepo) InsertSignInEvent(_ context.Context, e domain.SignInEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

func TestSignInAuditService_Record_Persists(t *testing.T) {
	repo := &stubSignInEventRepo{}
	svc := NewSignInAuditService(repo, zerolog.Nop())

	ev := domain.SignInEvent{Username: "alice", Outcome: domain.SignInBadPassword, OccurredAt: time.Now().UTC()}
	if err := svc.Record(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0] != ev {
		t.Fatalf("expected event to be inserted once, got %+v", repo.inserted)
	}
}

func TestSignInAuditService_Record_RejectsIncompleteEvents(t *testing.T) {
	repo := &stubSignInEventRepo{}
	svc := NewSignInAuditService(repo, zerolog.Nop())

	if err := svc.Record(context.Background(), domain.SignInEvent{Outcome: domain.SignInSucceeded, OccurredAt: time.Now()}); err == nil {
		t.Error("expected error for missing username")
	}
	if err := svc.Record(context.Background(), domain.SignInEvent{Username: "alice", Outcome: domain.SignInSucceeded}); err == nil {
		t.Error("expected error for missing timestamp")
	}
	if len(repo.inserted) != 0 {
		t.Errorf("nothing may be inserted, got %d", len(repo.inserted))
	}
}

func TestSignInAuditService_Record_RepoError(t *testing.T) {
	repo := &stubSignInEventRepo{insertErr: errors.New("mongo down")}
	svc := NewSignInAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), domain.SignInEvent{
		Username: "alice", Outcome: domain.SignInLockedOut, OccurredAt: time.Now(),
	})
	if !errors.Is(err, repo.insertErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
