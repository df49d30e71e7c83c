package ports

import (
	"context"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
)

// SignInEventRepository persists sign-in attempts to the audit trail.
type SignInEventRepository interface {
	InsertSignInEvent(ctx context.Context, event domain.SignInEvent) error
}

// SignInAuditor processes a single sign-in event.
type SignInAuditor interface {
	Record(ctx context.Context, event domain.SignInEvent) error
}

// SignInGuard tracks failed password checks and locks accounts out.
type SignInGuard interface {
	IsLockedOut(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// SignInRecorder accepts sign-in events for asynchronous auditing. Enqueue must
// not block the caller.
type SignInRecorder interface {
	Enqueue(event domain.SignInEvent)
}
