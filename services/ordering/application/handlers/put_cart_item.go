package handlers

import (
	"net/http"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	pkgvalidator "github.com/ghuser/tabshare/pkg/validator"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// SetCartItemRequest is the request body for PUT /sessions/{sessionID}/cart/items/{menuItemID}.
// A quantity of zero removes the line.
type SetCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0" example:"3"`
} // @name SetCartItemRequest

// PutCartItemHandler handles PUT /sessions/{sessionID}/cart/items/{menuItemID} requests.
type PutCartItemHandler struct {
	svc *appsvcs.Services
}

// NewPutCartItemHandler returns a PutCartItemHandler backed by the given services.
func NewPutCartItemHandler(svc *appsvcs.Services) *PutCartItemHandler {
	return &PutCartItemHandler{svc: svc}
}

// Execute sets the absolute quantity of the caller's cart line.
//
//	@Summary		Set cart line quantity
//	@Description	Replaces the line's quantity; 0 deletes the line
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string				true	"Session ID"
//	@Param			menuItemID	path		string				true	"Menu item ID"
//	@Param			request		body		SetCartItemRequest	true	"Target quantity"
//	@Success		200			{object}	models.CartSnapshot
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/cart/items/{menuItemID} [put]
func (h *PutCartItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	req, ok := pkgvalidator.ValidateRequest[SetCartItemRequest](w, r)
	if !ok {
		return
	}

	cart, err := h.svc.Cart.SetQuantity(r.Context(), sessionID, userID, menuItemID, *req.Quantity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, cart)
}
