package handlers

import (
	"net/http"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	appsvcs "github.com/ghuser/tabshare/services/identity/application/services"
)

// GetMeHandler handles GET /auth/me requests.
type GetMeHandler struct {
	svc *appsvcs.Services
}

// NewGetMeHandler returns a GetMeHandler backed by the given services.
func NewGetMeHandler(svc *appsvcs.Services) *GetMeHandler {
	return &GetMeHandler{svc: svc}
}

// Execute returns the authenticated caller's account.
//
//	@Summary		Current account
//	@Description	Returns the logged-in user
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/auth/me [get]
func (h *GetMeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.svc.User.GetByID(r.Context(), userID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
