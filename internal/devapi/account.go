// Package devapi is a development backend that speaks the same REST contract
// as the production pet-care API for the user endpoints: token login, profile,
// registration, logout, password change and administrator role assignment.
//
// Tokens are HS256 JWTs sent with the "Token" scheme; logout revokes the
// token id until the token would have expired.
package devapi

import (
	"errors"
	"time"

	"github.com/petcare/petcare-client/internal/core/domain"
)

var (
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
)

// Account is a stored user.
type Account struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Role         string
	PasswordHash string
	IsActive     bool
	DateJoined   time.Time
	UpdatedAt    time.Time
}

// Profile is the representation returned by the profile endpoints.
func (a *Account) Profile() *domain.Profile {
	return &domain.Profile{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		PhoneNumber: a.PhoneNumber,
		Role:        a.Role,
	}
}

// Summary is the representation returned by the administrator user list.
func (a *Account) Summary() domain.UserSummary {
	return domain.UserSummary{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		PhoneNumber: a.PhoneNumber,
		Role:        a.Role,
		IsActive:    a.IsActive,
		DateJoined:  a.DateJoined,
	}
}

func cloneAccount(a *Account) *Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
