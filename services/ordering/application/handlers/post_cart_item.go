package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	pkgvalidator "github.com/ghuser/tabshare/pkg/validator"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// AddCartItemRequest is the request body for POST /sessions/{sessionID}/cart/items.
// Quantity is optional and defaults to 1.
type AddCartItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" validate:"required" example:"123e4567-e89b-12d3-a456-426614174000"`
	Quantity   *int      `json:"quantity,omitempty" validate:"omitempty,min=1" example:"2"`
} // @name AddCartItemRequest

// PostCartItemHandler handles POST /sessions/{sessionID}/cart/items requests.
type PostCartItemHandler struct {
	svc *appsvcs.Services
}

// NewPostCartItemHandler returns a PostCartItemHandler backed by the given services.
func NewPostCartItemHandler(svc *appsvcs.Services) *PostCartItemHandler {
	return &PostCartItemHandler{svc: svc}
}

// Execute adds a catalog item to the caller's cart, merging into an existing
// line when one exists.
//
//	@Summary		Add item to cart
//	@Description	Adds quantity (default 1) of a menu item to the caller's cart
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string				true	"Session ID"
//	@Param			request		body		AddCartItemRequest	true	"Item to add"
//	@Success		200			{object}	models.CartSnapshot
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/cart/items [post]
func (h *PostCartItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[AddCartItemRequest](w, r)
	if !ok {
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.svc.Cart.AddItem(r.Context(), sessionID, userID, req.MenuItemID, quantity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, cart)
}
