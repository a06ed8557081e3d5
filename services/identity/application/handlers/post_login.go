package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	pkgvalidator "github.com/ghuser/tabshare/pkg/validator"
	appsvcs "github.com/ghuser/tabshare/services/identity/application/services"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"correct horse"`
} // @name LoginRequest

// PostLoginHandler handles POST /auth/login requests.
type PostLoginHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
}

// NewPostLoginHandler returns a PostLoginHandler backed by the given services.
func NewPostLoginHandler(svc *appsvcs.Services, store sessions.Store) *PostLoginHandler {
	return &PostLoginHandler{svc: svc, store: store}
}

// Execute verifies credentials and starts a login session.
//
//	@Summary		Log in
//	@Description	Verifies email + password and sets the session cookie
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	UserResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/auth/login [post]
func (h *PostLoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	user, err := h.svc.User.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := auth.SignIn(h.store, w, r, user.ID); err != nil {
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
