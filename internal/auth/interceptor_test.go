package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fieldgate/fieldgate/internal/core/domain"
)

func admin() domain.AuthContext {
	return domain.Authenticated(&domain.Principal{ID: "p1", Roles: []string{domain.RoleUser, domain.RoleAdmin}})
}

func user() domain.AuthContext {
	return domain.Authenticated(&domain.Principal{ID: "p2", Roles: []string{domain.RoleUser}})
}

func TestAuthorize_UnprotectedAlwaysPasses(t *testing.T) {
	ic := NewInterceptor(zerolog.Nop())
	policy := domain.FieldAuthPolicy{}

	for name, actx := range map[string]domain.AuthContext{
		"anonymous": domain.Anonymous,
		"user":      user(),
		"admin":     admin(),
	} {
		if err := ic.Authorize(policy, actx); err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
	}
}

func TestAuthorize_Protected(t *testing.T) {
	ic := NewInterceptor(zerolog.Nop())
	policy := domain.FieldAuthPolicy{RequiredRole: domain.RoleAdmin}

	if err := ic.Authorize(policy, domain.Anonymous); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("anonymous: expected ErrForbidden, got %v", err)
	}
	if err := ic.Authorize(policy, user()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("wrong role: expected ErrForbidden, got %v", err)
	}
	if err := ic.Authorize(policy, admin()); err != nil {
		t.Fatalf("matching role: unexpected error: %v", err)
	}
}

func TestWrap_ShortCircuitsOnDenial(t *testing.T) {
	ic := NewInterceptor(zerolog.Nop())

	invoked := false
	field := ic.Wrap(domain.Field{
		Name:   "secrets",
		Policy: domain.FieldAuthPolicy{RequiredRole: domain.RoleAdmin},
		Resolve: func(ctx context.Context, actx domain.AuthContext, args map[string]any) (any, error) {
			invoked = true
			return "classified", nil
		},
	})

	if _, err := field.Resolve(context.Background(), domain.Anonymous, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := field.Resolve(context.Background(), user(), nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for missing role, got %v", err)
	}
	if invoked {
		t.Fatalf("inner resolver must not run on denial")
	}
}

func TestWrap_TransparentWhenAuthorized(t *testing.T) {
	ic := NewInterceptor(zerolog.Nop())

	inner := func(ctx context.Context, actx domain.AuthContext, args map[string]any) (any, error) {
		return args["echo"], nil
	}
	field := ic.Wrap(domain.Field{
		Name:    "echo",
		Policy:  domain.FieldAuthPolicy{RequiredRole: domain.RoleUser},
		Resolve: inner,
	})

	args := map[string]any{"echo": 42}
	direct, err := inner(context.Background(), user(), args)
	if err != nil {
		t.Fatalf("direct call: %v", err)
	}
	wrapped, err := field.Resolve(context.Background(), user(), args)
	if err != nil {
		t.Fatalf("wrapped call: %v", err)
	}
	if direct != wrapped {
		t.Fatalf("wrapped output %v differs from direct output %v", wrapped, direct)
	}
}

func TestWrap_UnprotectedUntouched(t *testing.T) {
	ic := NewInterceptor(zerolog.Nop())

	field := domain.Field{
		Name:   "version",
		Policy: domain.FieldAuthPolicy{},
		Resolve: func(ctx context.Context, actx domain.AuthContext, args map[string]any) (any, error) {
			return "v1", nil
		},
	}

	wrapped := ic.Wrap(field)
	out, err := wrapped.Resolve(context.Background(), domain.Anonymous, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "v1" {
		t.Fatalf("unexpected output: %v", out)
	}
}
