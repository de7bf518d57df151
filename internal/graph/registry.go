// Package graph holds the declared operation surface: a flat set of named
// query/mutation fields, each optionally carrying a role requirement. The
// registry is assembled at startup, rewritten once so protected fields enforce
// authorization, and frozen before any request is served.
package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/fieldgate/fieldgate/internal/auth"
	"github.com/fieldgate/fieldgate/internal/core/domain"
)

// Registry collects field declarations during schema construction.
type Registry struct {
	fields map[string]domain.Field
}

func NewRegistry() *Registry {
	return &Registry{fields: make(map[string]domain.Field)}
}

// Register adds a field declaration. Field names are unique; redeclaring one
// is a wiring bug surfaced at startup.
func (r *Registry) Register(f domain.Field) error {
	if f.Name == "" || f.Resolve == nil {
		return fmt.Errorf("register field: name and resolver are required")
	}
	if _, exists := r.fields[f.Name]; exists {
		return fmt.Errorf("register field %q: already declared", f.Name)
	}
	r.fields[f.Name] = f
	return nil
}

// MustRegister is Register for static startup wiring.
func (r *Registry) MustRegister(fields ...domain.Field) {
	for _, f := range fields {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
}

// FieldNames returns the declared names in sorted order.
func (r *Registry) FieldNames() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema is the frozen, rewritten operation set served to requests. Protection
// status never changes after Build.
type Schema struct {
	fields map[string]domain.Field
}

// Build runs the authorization rewrite over every declared field: fields with
// a required role are replaced by their interceptor-wrapped form, the rest are
// untouched. The rewrite reads only the declared policies, so building twice
// from the same registry yields equivalent schemas regardless of declaration
// order.
func Build(reg *Registry, ic *auth.Interceptor) *Schema {
	fields := make(map[string]domain.Field, len(reg.fields))
	for name, f := range reg.fields {
		fields[name] = ic.Wrap(f)
	}
	return &Schema{fields: fields}
}

// Policy returns the declared policy for a field, for introspection.
func (s *Schema) Policy(name string) (domain.FieldAuthPolicy, bool) {
	f, ok := s.fields[name]
	return f.Policy, ok
}

// Execute invokes a field by name under the given identity. Unknown names
// fail with ErrUnknownField; protected fields fail with ErrForbidden before
// any business logic runs.
func (s *Schema) Execute(ctx context.Context, actx domain.AuthContext, name string, args map[string]any) (any, error) {
	f, ok := s.fields[name]
	if !ok {
		return nil, domain.ErrUnknownField
	}
	return f.Resolve(ctx, actx, args)
}
