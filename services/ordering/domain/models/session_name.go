package models

import (
	"fmt"
	"strings"

	"github.com/ghuser/tabshare/services/ordering/domain"
)

// SessionName is a value object representing a valid session display name.
// Encapsulates validation rules: trimmed, non-empty, at most 80 characters.
type SessionName string

const maxSessionNameLength = 80

// NewSessionName constructs a valid SessionName or returns an error if
// constraints are violated. Leading and trailing whitespace is trimmed.
func NewSessionName(s string) (SessionName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidSessionName)
	}
	if len(s) > maxSessionNameLength {
		return "", fmt.Errorf("%w: must not exceed %d characters", domain.ErrInvalidSessionName, maxSessionNameLength)
	}
	return SessionName(s), nil
}

// String returns the underlying string value.
func (n SessionName) String() string {
	return string(n)
}
