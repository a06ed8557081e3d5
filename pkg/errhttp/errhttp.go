// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/tabshare/pkg/httpx"
	identitydomain "github.com/ghuser/tabshare/services/identity/domain"
	orderingdomain "github.com/ghuser/tabshare/services/ordering/domain"
)

var production bool

// SetProduction enables masking of 5xx response bodies. Called once at
// startup from the config; sentinel-mapped 4xx messages keep their text
// either way.
func SetProduction(on bool) {
	production = on
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors; in
// production the 5xx body is the generic status text, never err.Error(),
// so persistence errors cannot leak hosts or SQL to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, production))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, orderingdomain.ErrSessionNotFound),
		errors.Is(err, orderingdomain.ErrMenuItemNotFound),
		errors.Is(err, orderingdomain.ErrCartLineNotFound),
		errors.Is(err, orderingdomain.ErrMembershipNotFound),
		errors.Is(err, identitydomain.ErrUserNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, orderingdomain.ErrSessionClosed):
		return http.StatusConflict // 409
	case errors.Is(err, orderingdomain.ErrNotSessionCreator):
		return http.StatusForbidden // 403
	case errors.Is(err, orderingdomain.ErrInvalidSessionName),
		errors.Is(err, orderingdomain.ErrInvalidPin),
		errors.Is(err, orderingdomain.ErrInvalidQuantity),
		errors.Is(err, orderingdomain.ErrReceiptEmpty),
		errors.Is(err, identitydomain.ErrInvalidEmail),
		errors.Is(err, identitydomain.ErrInvalidDisplayName),
		errors.Is(err, identitydomain.ErrInvalidPassword):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, identitydomain.ErrEmailTaken):
		return http.StatusConflict // 409
	case errors.Is(err, identitydomain.ErrInvalidCredentials):
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
