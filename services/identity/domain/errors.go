package domain

import "errors"

// Sentinel errors for the identity domain. Use errors.Is() to check these.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates another account already uses the email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures cannot be used to probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidEmail indicates the email fails basic shape validation.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidDisplayName indicates the display name violates constraints.
	ErrInvalidDisplayName = errors.New("invalid display name")

	// ErrInvalidPassword indicates the password does not meet the minimum length.
	ErrInvalidPassword = errors.New("password must be at least 8 characters")
)
