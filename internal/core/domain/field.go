package domain

import (
	"context"
	"errors"
)

var ErrForbidden = errors.New("not authorized")
var ErrUnknownField = errors.New("unknown field")

// AuthContext is the resolved identity for one request. Exactly one of two
// states holds: Authenticated (Principal set) or Anonymous (zero value).
type AuthContext struct {
	Principal *Principal
}

// Anonymous is the context for requests without a usable credential.
var Anonymous = AuthContext{}

// Authenticated builds the context for a resolved principal.
func Authenticated(p *Principal) AuthContext {
	return AuthContext{Principal: p}
}

func (a AuthContext) IsAuthenticated() bool {
	return a.Principal != nil
}

// HasRole reports whether the context belongs to an authenticated principal
// carrying the given role. Always false for Anonymous.
func (a AuthContext) HasRole(role string) bool {
	return a.Principal != nil && a.Principal.HasRole(role)
}

// Resolver executes one field. Wrapped and unwrapped resolvers share this
// contract; authorization only adds ErrForbidden as a failure mode.
type Resolver func(ctx context.Context, actx AuthContext, args map[string]any) (any, error)

// FieldAuthPolicy is the declarative requirement attached to a field.
// An empty RequiredRole means the field is unprotected.
type FieldAuthPolicy struct {
	RequiredRole string
}

// Protected reports whether invocations must pass an authorization check.
func (p FieldAuthPolicy) Protected() bool {
	return p.RequiredRole != ""
}

// Field is a single named operation exposed for external invocation.
type Field struct {
	Name    string
	Policy  FieldAuthPolicy
	Resolve Resolver
}
