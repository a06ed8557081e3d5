package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
)

// LogoutResponse acknowledges a logout.
type LogoutResponse struct {
	OK bool `json:"ok" example:"true"`
} // @name LogoutResponse

// PostLogoutHandler handles POST /auth/logout requests.
type PostLogoutHandler struct {
	store sessions.Store
}

// NewPostLogoutHandler returns a PostLogoutHandler using the given session store.
func NewPostLogoutHandler(store sessions.Store) *PostLogoutHandler {
	return &PostLogoutHandler{store: store}
}

// Execute expires the login cookie. Ordering-session memberships survive:
// logging back in picks up whatever tabs the user was part of.
//
//	@Summary		Log out
//	@Description	Expires the login session cookie
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	LogoutResponse
//	@Router			/auth/logout [post]
func (h *PostLogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(h.store, w, r); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, LogoutResponse{OK: true})
}
