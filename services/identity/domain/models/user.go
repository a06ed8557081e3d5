package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/tabshare/services/identity/domain"
)

const (
	maxDisplayNameLength = 80
	minPasswordLength    = 8
)

// User is an account that can log in and take part in ordering sessions.
// The password is only ever stored as a bcrypt hash.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// NewUser validates the inputs, hashes the password and returns a User ready
// to persist.
func NewUser(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: must not be empty", domain.ErrInvalidDisplayName)
	}
	if len(name) > maxDisplayNameLength {
		return nil, fmt.Errorf("%w: must be at most %d characters", domain.ErrInvalidDisplayName, maxDisplayNameLength)
	}

	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	if len(password) < minPasswordLength {
		return nil, domain.ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}

// NormalizeEmail lowercases and trims the address and checks its basic shape.
// Deliverability is not verified; the unique index on users.email is the real
// duplicate guard.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}
