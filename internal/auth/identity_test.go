package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldgate/fieldgate/internal/auth/token"
	"github.com/fieldgate/fieldgate/internal/core/domain"
)

type stubPrincipalRepo struct {
	byID map[string]*domain.Principal
}

func newStubPrincipalRepo(principals ...*domain.Principal) *stubPrincipalRepo {
	r := &stubPrincipalRepo{byID: make(map[string]*domain.Principal)}
	for _, p := range principals {
		r.byID[p.ID] = p
	}
	return r
}

func (r *stubPrincipalRepo) FindByID(_ context.Context, id string) (*domain.Principal, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPrincipalNotFound
}

func (r *stubPrincipalRepo) FindByEmail(_ context.Context, email string) (*domain.Principal, error) {
	for _, p := range r.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

func (r *stubPrincipalRepo) Insert(_ context.Context, email, hash string, roles []string) (*domain.Principal, error) {
	p := &domain.Principal{ID: email, Email: email, PasswordHash: hash, Roles: roles}
	r.byID[p.ID] = p
	return p, nil
}

func TestIdentityResolver_ValidToken(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	repo := newStubPrincipalRepo(&domain.Principal{ID: "p1", Email: "a@x.com", Roles: []string{domain.RoleUser}})
	resolver := NewIdentityResolver(codec, repo, zerolog.Nop())

	signed, err := codec.Sign("p1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	actx := resolver.Resolve(context.Background(), "Bearer "+signed)
	if !actx.IsAuthenticated() {
		t.Fatalf("expected authenticated context")
	}
	if actx.Principal.ID != "p1" {
		t.Fatalf("unexpected principal: %+v", actx.Principal)
	}
}

func TestIdentityResolver_AnonymousCases(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	repo := newStubPrincipalRepo(&domain.Principal{ID: "p1", Email: "a@x.com"})
	resolver := NewIdentityResolver(codec, repo, zerolog.Nop())

	signed, err := codec.Sign("p1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	foreign, err := token.NewCodec("other-secret", time.Hour).Sign("p1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	cases := map[string]string{
		"empty header":         "",
		"no scheme":            signed,
		"wrong scheme":         "Token " + signed,
		"lowercase scheme":     "bearer " + signed,
		"scheme without token": "Bearer ",
		"garbage token":        "Bearer not-a-token",
		"wrong signing secret": "Bearer " + foreign,
	}
	for name, header := range cases {
		if actx := resolver.Resolve(context.Background(), header); actx.IsAuthenticated() {
			t.Fatalf("%s: expected anonymous context", name)
		}
	}
}

func TestIdentityResolver_RemovedPrincipal(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	resolver := NewIdentityResolver(codec, newStubPrincipalRepo(), zerolog.Nop())

	signed, err := codec.Sign("ghost")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// Token is cryptographically valid but its subject no longer exists:
	// resolution degrades to anonymous, not to an error.
	if actx := resolver.Resolve(context.Background(), "Bearer "+signed); actx.IsAuthenticated() {
		t.Fatalf("expected anonymous context for removed principal")
	}
}

func TestIdentityResolver_Idempotent(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	repo := newStubPrincipalRepo(&domain.Principal{ID: "p1", Email: "a@x.com"})
	resolver := NewIdentityResolver(codec, repo, zerolog.Nop())

	signed, err := codec.Sign("p1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	first := resolver.Resolve(context.Background(), "Bearer "+signed)
	second := resolver.Resolve(context.Background(), "Bearer "+signed)
	if first.Principal != second.Principal {
		t.Fatalf("expected identical contexts for identical input")
	}
}
