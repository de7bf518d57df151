package auth

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fieldgate/fieldgate/internal/core/domain"
	"github.com/fieldgate/fieldgate/internal/metrics"
)

// Interceptor enforces field policies before the wrapped resolver runs.
type Interceptor struct {
	log zerolog.Logger
}

func NewInterceptor(log zerolog.Logger) *Interceptor {
	return &Interceptor{log: log}
}

// Authorize checks a field policy against the resolved identity. Policies
// without a required role always pass, for any context. Protected policies
// pass only for an authenticated principal carrying the role; unauthenticated
// and under-privileged callers both receive the same ErrForbidden.
func (i *Interceptor) Authorize(policy domain.FieldAuthPolicy, actx domain.AuthContext) error {
	if !policy.Protected() {
		return nil
	}
	if actx.HasRole(policy.RequiredRole) {
		return nil
	}
	return domain.ErrForbidden
}

// Wrap returns a copy of the field whose resolver first authorizes the caller.
// On denial it short-circuits with ErrForbidden and the inner resolver never
// runs; on success the inner resolver is invoked with the original arguments
// and its result is returned unchanged. Fields without a required role are
// returned as-is.
func (i *Interceptor) Wrap(f domain.Field) domain.Field {
	if !f.Policy.Protected() {
		return f
	}

	inner := f.Resolve
	name, policy := f.Name, f.Policy
	f.Resolve = func(ctx context.Context, actx domain.AuthContext, args map[string]any) (any, error) {
		if err := i.Authorize(policy, actx); err != nil {
			metrics.AuthzDecisionsTotal.WithLabelValues(name, "deny").Inc()
			// The caller only ever sees ErrForbidden; the distinction between
			// unauthenticated and under-privileged stays in the logs.
			if actx.IsAuthenticated() {
				i.log.Debug().Str("field", name).Str("principal", actx.Principal.ID).
					Str("required_role", policy.RequiredRole).Msg("field denied: missing role")
			} else {
				i.log.Debug().Str("field", name).Msg("field denied: anonymous caller")
			}
			return nil, err
		}
		metrics.AuthzDecisionsTotal.WithLabelValues(name, "allow").Inc()
		return inner(ctx, actx, args)
	}
	return f
}
