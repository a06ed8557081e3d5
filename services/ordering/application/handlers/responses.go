package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/tabshare/pkg/httpx"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
)

// SessionResponse is the wire shape of an ordering session.
type SessionResponse struct {
	ID        uuid.UUID  `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string     `json:"name"       example:"Hotpot Night"`
	Pin       string     `json:"pin"        example:"7341"`
	Status    string     `json:"status"     example:"active"`
	CreatedBy uuid.UUID  `json:"created_by" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatedAt time.Time  `json:"created_at" example:"2026-03-14T19:00:00Z"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
} // @name SessionResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"session not found"`
} // @name ErrorResponse

func sessionResponse(s *models.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Name:      s.Name.String(),
		Pin:       s.Pin.String(),
		Status:    string(s.Status),
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		ClosedAt:  s.ClosedAt,
	}
}

// sessionIDParam parses the {sessionID} chi route parameter. Writes a 400
// response and reports false when the value is not a UUID.
func sessionIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

// menuItemIDParam parses the {menuItemID} chi route parameter.
func menuItemIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "menuItemID"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid menu item id")
		return uuid.Nil, false
	}
	return id, true
}
