package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// DeleteCartItemHandler handles DELETE /sessions/{sessionID}/cart/items/{menuItemID} requests.
type DeleteCartItemHandler struct {
	svc *appsvcs.Services
}

// NewDeleteCartItemHandler returns a DeleteCartItemHandler backed by the given services.
func NewDeleteCartItemHandler(svc *appsvcs.Services) *DeleteCartItemHandler {
	return &DeleteCartItemHandler{svc: svc}
}

// Execute removes quantity units (default 1) of an item from the caller's
// cart; a removal reaching zero deletes the line.
//
//	@Summary		Remove item from cart
//	@Description	Subtracts quantity (default 1, ?quantity=n) from the caller's cart line
//	@Tags			cart
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Param			menuItemID	path		string	true	"Menu item ID"
//	@Param			quantity	query		int		false	"Units to remove (default 1)"
//	@Success		200			{object}	models.CartSnapshot
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/cart/items/{menuItemID} [delete]
func (h *DeleteCartItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	menuItemID, ok := menuItemIDParam(w, r)
	if !ok {
		return
	}

	quantity := 1
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "quantity must be an integer")
			return
		}
	}

	cart, err := h.svc.Cart.RemoveItem(r.Context(), sessionID, userID, menuItemID, quantity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, cart)
}
