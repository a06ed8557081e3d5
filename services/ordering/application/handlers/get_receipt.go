package handlers

import (
	"net/http"

	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// GetReceiptHandler handles GET /sessions/{sessionID}/receipt requests.
type GetReceiptHandler struct {
	svc *appsvcs.Services
}

// NewGetReceiptHandler returns a GetReceiptHandler backed by the given services.
func NewGetReceiptHandler(svc *appsvcs.Services) *GetReceiptHandler {
	return &GetReceiptHandler{svc: svc}
}

// Execute builds the session's consolidated receipt: one block per member
// with cart lines, each with a subtotal, plus the grand total.
//
//	@Summary		Session receipt
//	@Description	Per-member breakdown with subtotals and the session grand total
//	@Tags			receipt
//	@Produce		json
//	@Param			sessionID	path		string	true	"Session ID"
//	@Success		200			{object}	models.Receipt
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/sessions/{sessionID}/receipt [get]
func (h *GetReceiptHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.UserIDFromCtx(r.Context()); err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	receipt, err := h.svc.Receipt.Generate(r.Context(), sessionID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, receipt)
}
