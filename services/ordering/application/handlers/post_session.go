package handlers

import (
	"net/http"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	pkgvalidator "github.com/ghuser/tabshare/pkg/validator"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// CreateSessionRequest is the request body for POST /sessions.
type CreateSessionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80" example:"Hotpot Night"`
} // @name CreateSessionRequest

// PostSessionHandler handles POST /sessions requests.
type PostSessionHandler struct {
	svc *appsvcs.Services
}

// NewPostSessionHandler returns a PostSessionHandler backed by the given services.
func NewPostSessionHandler(svc *appsvcs.Services) *PostSessionHandler {
	return &PostSessionHandler{svc: svc}
}

// Execute creates a new ordering session with a fresh 4-digit PIN. The
// caller automatically becomes the session's first member.
//
//	@Summary		Create ordering session
//	@Description	Creates a session with a unique 4-digit PIN; the creator joins automatically
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSessionRequest	true	"Session creation request"
//	@Success		201		{object}	SessionResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/sessions [post]
func (h *PostSessionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateSessionRequest](w, r)
	if !ok {
		return
	}

	session, err := h.svc.Session.Create(r.Context(), userID, req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, sessionResponse(session))
}
