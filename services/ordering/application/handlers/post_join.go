package handlers

import (
	"net/http"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	pkgvalidator "github.com/ghuser/tabshare/pkg/validator"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// JoinSessionRequest is the request body for POST /sessions/join.
type JoinSessionRequest struct {
	Pin string `json:"pin" validate:"required,len=4,numeric" example:"7341"`
} // @name JoinSessionRequest

// PostJoinHandler handles POST /sessions/join requests.
type PostJoinHandler struct {
	svc *appsvcs.Services
}

// NewPostJoinHandler returns a PostJoinHandler backed by the given services.
func NewPostJoinHandler(svc *appsvcs.Services) *PostJoinHandler {
	return &PostJoinHandler{svc: svc}
}

// Execute joins the caller to the session with the given PIN. Rejoining a
// session is a success and leaves any existing cart untouched.
//
//	@Summary		Join session by PIN
//	@Description	Adds the caller to the session identified by the 4-digit PIN
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		JoinSessionRequest	true	"Join request"
//	@Success		200		{object}	SessionResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/sessions/join [post]
func (h *PostJoinHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[JoinSessionRequest](w, r)
	if !ok {
		return
	}

	session, err := h.svc.Membership.Join(r.Context(), req.Pin, userID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, sessionResponse(session))
}
