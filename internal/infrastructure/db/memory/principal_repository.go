// Package memory provides the in-process principal store. It is the default
// backend: a fresh instance per process (or per test) with no persistence.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fieldgate/fieldgate/internal/core/domain"
)

// PrincipalRepository is a mutex-guarded map store. Insert holds the write
// lock across its uniqueness check, so two concurrent inserts for the same
// email can never both succeed. IDs are random UUIDs and never reused.
type PrincipalRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Principal
	byEmail map[string]*domain.Principal
}

func NewPrincipalRepository() *PrincipalRepository {
	return &PrincipalRepository{
		byID:    make(map[string]*domain.Principal),
		byEmail: make(map[string]*domain.Principal),
	}
}

func (r *PrincipalRepository) FindByID(_ context.Context, id string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	return clone(p), nil
}

func (r *PrincipalRepository) FindByEmail(_ context.Context, email string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	return clone(p), nil
}

func (r *PrincipalRepository) Insert(_ context.Context, email, passwordHash string, roles []string) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return nil, domain.ErrDuplicateEmail
	}

	p := &domain.Principal{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Roles:        append([]string(nil), roles...),
		CreatedAt:    time.Now().UTC(),
	}
	r.byID[p.ID] = p
	r.byEmail[p.Email] = p
	return clone(p), nil
}

// clone keeps callers from mutating stored state through returned pointers.
func clone(p *domain.Principal) *domain.Principal {
	c := *p
	c.Roles = append([]string(nil), p.Roles...)
	return &c
}
