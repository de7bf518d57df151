package domain

import (
	"errors"
	"time"
)

// Role names attached to principals. Signup grants RoleUser; RoleAdmin is
// granted additionally to bootstrap-listed emails.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var ErrInvalidToken = errors.New("invalid token")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrWeakPassword = errors.New("password too short")
var ErrPrincipalNotFound = errors.New("principal not found")

// Principal models a registered identity with credentials and roles.
type Principal struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Roles        []string  `json:"roles" bson:"roles"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// HasRole reports whether the principal carries the given role.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
