package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	pkgvalidator "github.com/ghuser/tabshare/pkg/validator"
	appsvcs "github.com/ghuser/tabshare/services/identity/application/services"
)

// SignupRequest is the request body for POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=80" example:"Alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=8" example:"correct horse"`
} // @name SignupRequest

// UserResponse is the wire shape of an account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string    `json:"name"       example:"Alice"`
	Email     string    `json:"email"      example:"alice@example.com"`
	CreatedAt time.Time `json:"created_at" example:"2026-03-14T19:00:00Z"`
} // @name UserResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"email already registered"`
} // @name ErrorResponse

// PostSignupHandler handles POST /auth/signup requests.
type PostSignupHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
}

// NewPostSignupHandler returns a PostSignupHandler backed by the given services.
func NewPostSignupHandler(svc *appsvcs.Services, store sessions.Store) *PostSignupHandler {
	return &PostSignupHandler{svc: svc, store: store}
}

// Execute creates an account and signs the caller in.
//
//	@Summary		Sign up
//	@Description	Creates an account and starts a login session
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignupRequest	true	"New account"
//	@Success		201		{object}	UserResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/auth/signup [post]
func (h *PostSignupHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SignupRequest](w, r)
	if !ok {
		return
	}

	user, err := h.svc.User.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := auth.SignIn(h.store, w, r, user.ID); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
