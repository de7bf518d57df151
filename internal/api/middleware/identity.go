package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/fieldgate/fieldgate/internal/auth"
	"github.com/fieldgate/fieldgate/internal/core/domain"
	"github.com/fieldgate/fieldgate/internal/metrics"
)

// identityKey is where the resolved AuthContext lives on the echo context.
const identityKey = "auth_context"

// Identity resolves the request's Authorization header into an AuthContext
// and injects it for downstream handlers. It never rejects a request: a bad
// or missing credential resolves to Anonymous, and protected fields enforce
// their own policies later.
func Identity(resolver *auth.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actx := resolver.Resolve(c.Request().Context(), c.Request().Header.Get("Authorization"))
			if actx.IsAuthenticated() {
				metrics.IdentityResolutionsTotal.WithLabelValues("authenticated").Inc()
			} else {
				metrics.IdentityResolutionsTotal.WithLabelValues("anonymous").Inc()
			}
			c.Set(identityKey, actx)
			return next(c)
		}
	}
}

// IdentityFrom returns the AuthContext injected by Identity, or Anonymous
// when the middleware did not run.
func IdentityFrom(c echo.Context) domain.AuthContext {
	if actx, ok := c.Get(identityKey).(domain.AuthContext); ok {
		return actx
	}
	return domain.Anonymous
}
