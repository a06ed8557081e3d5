package handlers

import (
	"net/http"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// LeaveResponse acknowledges a leave request.
type LeaveResponse struct {
	OK bool `json:"ok" example:"true"`
} // @name LeaveResponse

// PostLeaveHandler handles POST /sessions/{sessionID}/leave requests.
type PostLeaveHandler struct {
	svc *appsvcs.Services
}

// NewPostLeaveHandler returns a PostLeaveHandler backed by the given services.
func NewPostLeaveHandler(svc *appsvcs.Services) *PostLeaveHandler {
	return &PostLeaveHandler{svc: svc}
}

// Execute removes the caller from the session, discarding their cart lines.
// Leaving a session the caller is not part of still returns ok.
//
//	@Summary		Leave session
//	@Description	Removes the caller's membership and cart lines; safe to retry
//	@Tags			sessions
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Success		200			{object}	LeaveResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/leave [post]
func (h *PostLeaveHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Membership.Leave(r.Context(), sessionID, userID); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, LeaveResponse{OK: true})
}
