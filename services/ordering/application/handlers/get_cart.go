package handlers

import (
	"net/http"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// GetCartHandler handles GET /sessions/{sessionID}/cart requests.
type GetCartHandler struct {
	svc *appsvcs.Services
}

// NewGetCartHandler returns a GetCartHandler backed by the given services.
func NewGetCartHandler(svc *appsvcs.Services) *GetCartHandler {
	return &GetCartHandler{svc: svc}
}

// Execute returns the caller's cart for the session with priced lines and a
// total. Works on closed sessions too.
//
//	@Summary		Get cart
//	@Description	Returns the caller's current cart with per-line and overall totals
//	@Tags			cart
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Success		200			{object}	models.CartSnapshot
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/cart [get]
func (h *GetCartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	cart, err := h.svc.Cart.GetCart(r.Context(), sessionID, userID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, cart)
}
