package ports

import (
	"context"

	"github.com/fieldgate/fieldgate/internal/core/domain"
)

// AuthService issues bearer credentials for registered principals.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (string, *domain.Principal, error)
	Login(ctx context.Context, email, password string) (string, *domain.Principal, error)
}
