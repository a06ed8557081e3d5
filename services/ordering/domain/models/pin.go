package models

import (
	"fmt"
	"math/rand/v2"

	"github.com/ghuser/tabshare/services/ordering/domain"
)

// PinLength is the number of digits in a session PIN.
const PinLength = 4

// Pin is a value object holding a session's join code: exactly four ASCII
// digits, leading zeros allowed. It is an opaque identifier, not a number —
// "0042" and "42" are different PINs.
type Pin string

// NewPin validates s as a 4-digit numeric string.
func NewPin(s string) (Pin, error) {
	if len(s) != PinLength {
		return "", fmt.Errorf("%w: must be exactly %d digits", domain.ErrInvalidPin, PinLength)
	}
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("%w: must contain only digits", domain.ErrInvalidPin)
		}
	}
	return Pin(s), nil
}

// RandomPin draws a uniformly random PIN from the 10,000-value space using
// the given source. Uniqueness is not checked here; the store's unique index
// is the authoritative guard and callers re-draw on conflict.
func RandomPin(rng *rand.Rand) Pin {
	return Pin(fmt.Sprintf("%04d", rng.IntN(10000)))
}

// String returns the underlying digit string.
func (p Pin) String() string {
	return string(p)
}
