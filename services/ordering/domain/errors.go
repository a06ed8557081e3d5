package domain

import "errors"

// Sentinel errors for the ordering domain. Use errors.Is() to check these.
var (
	// ErrSessionNotFound indicates the requested ordering session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionClosed indicates the session is closed and no longer accepts
	// joins or cart mutations.
	ErrSessionClosed = errors.New("session is closed")

	// ErrNotSessionCreator indicates the caller tried to close a session they
	// did not create.
	ErrNotSessionCreator = errors.New("only the session creator may do this")

	// ErrMembershipNotFound indicates the user is not a member of the session.
	ErrMembershipNotFound = errors.New("not a member of this session")

	// ErrMenuItemNotFound indicates the referenced menu item is not in the catalog.
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrCartLineNotFound indicates there is no cart line for the
	// (session, user, item) triple.
	ErrCartLineNotFound = errors.New("item not in cart")

	// ErrReceiptEmpty indicates no member of the session has any cart lines.
	// Recoverable: there is simply nothing to show yet.
	ErrReceiptEmpty = errors.New("no items in this session yet")

	// ErrPinTaken indicates another stored session already holds the PIN.
	// Internal: session creation re-draws on this; it never reaches a caller.
	ErrPinTaken = errors.New("pin already taken")

	// ErrInvalidSessionName indicates the session name violates domain constraints.
	ErrInvalidSessionName = errors.New("invalid session name")

	// ErrInvalidPin indicates the PIN is not a 4-digit numeric string.
	ErrInvalidPin = errors.New("invalid pin")

	// ErrInvalidQuantity indicates a non-positive quantity delta.
	ErrInvalidQuantity = errors.New("invalid quantity")
)
