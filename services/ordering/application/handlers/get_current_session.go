package handlers

import (
	"net/http"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// CurrentSessionResponse wraps the caller's current session; the session is
// null when the user belongs to no active session.
type CurrentSessionResponse struct {
	Session *SessionResponse `json:"session"`
} // @name CurrentSessionResponse

// GetCurrentSessionHandler handles GET /sessions/current requests.
type GetCurrentSessionHandler struct {
	svc *appsvcs.Services
}

// NewGetCurrentSessionHandler returns a GetCurrentSessionHandler backed by the given services.
func NewGetCurrentSessionHandler(svc *appsvcs.Services) *GetCurrentSessionHandler {
	return &GetCurrentSessionHandler{svc: svc}
}

// Execute returns the active session the caller joined most recently.
//
//	@Summary		Current session
//	@Description	Returns the active session the caller joined most recently, or null
//	@Tags			sessions
//	@Produce		json
//	@Success		200	{object}	CurrentSessionResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/sessions/current [get]
func (h *GetCurrentSessionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	session, err := h.svc.Membership.CurrentSession(r.Context(), userID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	var resp CurrentSessionResponse
	if session != nil {
		sr := sessionResponse(session)
		resp.Session = &sr
	}
	httpx.JSON(w, http.StatusOK, resp)
}
