package handlers

import (
	"net/http"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// PostCloseHandler handles POST /sessions/{sessionID}/close requests.
type PostCloseHandler struct {
	svc *appsvcs.Services
}

// NewPostCloseHandler returns a PostCloseHandler backed by the given services.
func NewPostCloseHandler(svc *appsvcs.Services) *PostCloseHandler {
	return &PostCloseHandler{svc: svc}
}

// Execute closes the session. Only the creator may close; closing an already
// closed session succeeds and returns the session unchanged.
//
//	@Summary		Close session
//	@Description	Transitions the session to closed; joins and cart mutations are rejected afterwards
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Success		200			{object}	SessionResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/close [post]
func (h *PostCloseHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	session, err := h.svc.Session.Close(r.Context(), sessionID, userID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, sessionResponse(session))
}
