package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/fieldgate/fieldgate/internal/auth/token"
	"github.com/fieldgate/fieldgate/internal/core/domain"
	"github.com/fieldgate/fieldgate/internal/core/ports"
	"github.com/fieldgate/fieldgate/internal/metrics"
)

const defaultMinPasswordLength = 8

// dummyHash is compared against when login hits an unknown email, so the two
// rejection paths cost a bcrypt computation either way.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("fieldgate-dummy"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService implements signup and login: the credential issuer.
type AuthService struct {
	repo        ports.PrincipalRepository
	codec       *token.Codec
	minPassword int
	admins      map[string]struct{}
	hashSem     *semaphore.Weighted
	log         zerolog.Logger
}

// NewAuthService builds the issuer. minPassword <= 0 falls back to 8.
// adminEmails lists addresses that receive the ADMIN role at signup.
func NewAuthService(repo ports.PrincipalRepository, codec *token.Codec, minPassword int, adminEmails []string, log zerolog.Logger) *AuthService {
	if minPassword <= 0 {
		minPassword = defaultMinPasswordLength
	}
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.TrimSpace(e); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &AuthService{
		repo:        repo,
		codec:       codec,
		minPassword: minPassword,
		admins:      admins,
		// bcrypt is deliberately expensive; bound concurrent computations so
		// hashing cannot occupy every scheduler thread at once.
		hashSem: semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
		log:     log,
	}
}

// Signup registers a principal and issues its first token. The plaintext
// password is hashed before storage and never logged.
func (s *AuthService) Signup(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	if len(password) < s.minPassword {
		metrics.SignupsTotal.WithLabelValues("weak_password").Inc()
		return "", nil, domain.ErrWeakPassword
	}

	hash, err := s.hashPassword(ctx, password)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	roles := []string{domain.RoleUser}
	if _, ok := s.admins[email]; ok {
		roles = append(roles, domain.RoleAdmin)
	}

	principal, err := s.repo.Insert(ctx, email, hash, roles)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.SignupsTotal.WithLabelValues("duplicate_email").Inc()
		} else {
			metrics.SignupsTotal.WithLabelValues("error").Inc()
		}
		return "", nil, err
	}

	signed, err := s.codec.Sign(principal.ID)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("principal", principal.ID).Msg("principal registered")
	return signed, principal, nil
}

// Login verifies a password and issues a fresh token. Unknown email and wrong
// password collapse into the same ErrInvalidCredentials, and both paths pay
// for a bcrypt comparison, so failures carry no enumeration signal.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	principal, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			_ = s.comparePassword(ctx, dummyHash, password)
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", nil, err
	}

	if s.comparePassword(ctx, []byte(principal.PasswordHash), password) != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Sign(principal.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return signed, principal, nil
}

func (s *AuthService) hashPassword(ctx context.Context, password string) (string, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.hashSem.Release(1)

	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) comparePassword(ctx context.Context, hash []byte, password string) error {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.hashSem.Release(1)

	start := time.Now()
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	return err
}
