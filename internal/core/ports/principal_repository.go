package ports

import (
	"context"

	"github.com/fieldgate/fieldgate/internal/core/domain"
)

// PrincipalRepository defines the interface for principal persistence.
//
// Implementations must serialize Insert against concurrent FindByEmail checks
// for the same email: a check-then-insert race must never produce two
// principals sharing an email.
type PrincipalRepository interface {
	// FindByID returns ErrPrincipalNotFound when no principal has the id.
	FindByID(ctx context.Context, id string) (*domain.Principal, error)
	// FindByEmail returns ErrPrincipalNotFound when the email is unregistered.
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	// Insert creates a principal, returning ErrDuplicateEmail on conflict.
	Insert(ctx context.Context, email, passwordHash string, roles []string) (*domain.Principal, error)
}
