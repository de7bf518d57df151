// Package auth derives request identities from bearer credentials and
// enforces field-level role requirements before business resolvers run.
package auth

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fieldgate/fieldgate/internal/auth/token"
	"github.com/fieldgate/fieldgate/internal/core/domain"
	"github.com/fieldgate/fieldgate/internal/core/ports"
)

// bearerPrefix is matched case-sensitively; any other scheme is treated as an
// absent credential.
const bearerPrefix = "Bearer "

// IdentityResolver turns a raw Authorization header value into the
// AuthContext for the current request.
type IdentityResolver struct {
	codec *token.Codec
	repo  ports.PrincipalRepository
	log   zerolog.Logger
}

func NewIdentityResolver(codec *token.Codec, repo ports.PrincipalRepository, log zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{codec: codec, repo: repo, log: log}
}

// Resolve never fails: a missing, malformed, expired or orphaned credential
// degrades to Anonymous so unprotected fields remain servable. Given the same
// header, store state and instant it always produces the same context.
func (r *IdentityResolver) Resolve(ctx context.Context, rawHeader string) domain.AuthContext {
	raw, ok := strings.CutPrefix(rawHeader, bearerPrefix)
	if !ok {
		return domain.Anonymous
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Anonymous
	}

	subject, err := r.codec.Verify(raw)
	if err != nil {
		r.log.Debug().Msg("credential rejected, resolving as anonymous")
		return domain.Anonymous
	}

	principal, err := r.repo.FindByID(ctx, subject)
	if err != nil {
		// A token for a principal that no longer exists is equivalent to no
		// credential, not a request-level error.
		r.log.Debug().Str("subject", subject).Msg("token subject not found, resolving as anonymous")
		return domain.Anonymous
	}

	return domain.Authenticated(principal)
}
