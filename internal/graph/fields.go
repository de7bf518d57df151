package graph

import (
	"context"
	"fmt"

	"github.com/fieldgate/fieldgate/internal/core/domain"
	"github.com/fieldgate/fieldgate/internal/core/ports"
)

// CoreFields declares the built-in operation surface. Business collaborators
// register additional fields the same way; the rewrite in Build applies to all
// of them uniformly.
func CoreFields(repo ports.PrincipalRepository, version string) []domain.Field {
	return []domain.Field{
		{
			Name: "version",
			Resolve: func(ctx context.Context, actx domain.AuthContext, args map[string]any) (any, error) {
				return version, nil
			},
		},
		{
			Name:   "me",
			Policy: domain.FieldAuthPolicy{RequiredRole: domain.RoleUser},
			Resolve: func(ctx context.Context, actx domain.AuthContext, args map[string]any) (any, error) {
				return actx.Principal, nil
			},
		},
		{
			Name:   "principal",
			Policy: domain.FieldAuthPolicy{RequiredRole: domain.RoleAdmin},
			Resolve: func(ctx context.Context, actx domain.AuthContext, args map[string]any) (any, error) {
				email, _ := args["email"].(string)
				if email == "" {
					return nil, fmt.Errorf("principal: email argument is required")
				}
				return repo.FindByEmail(ctx, email)
			},
		},
	}
}
