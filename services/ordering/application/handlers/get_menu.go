package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tabshare/pkg/errhttp"
	"github.com/ghuser/tabshare/pkg/httpx"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// MenuItemResponse is one catalog entry.
type MenuItemResponse struct {
	ID          uuid.UUID       `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string          `json:"name"        example:"Shrimp Dumplings"`
	Description string          `json:"description" example:"Six pieces, steamed"`
	Price       decimal.Decimal `json:"price"       example:"8.00"`
	Category    string          `json:"category"    example:"Dim Sum"`
} // @name MenuItemResponse

// MenuResponse is the full catalog listing.
type MenuResponse struct {
	Items       []MenuItemResponse `json:"items"`
	RetrievedAt time.Time          `json:"retrieved_at"`
} // @name MenuResponse

// GetMenuHandler handles GET /menu requests.
type GetMenuHandler struct {
	svc *appsvcs.Services
}

// NewGetMenuHandler returns a GetMenuHandler backed by the given services.
func NewGetMenuHandler(svc *appsvcs.Services) *GetMenuHandler {
	return &GetMenuHandler{svc: svc}
}

// Execute lists the catalog. Public: browsing the menu needs no account.
//
//	@Summary		List menu
//	@Description	Returns the catalog ordered by category, then name
//	@Tags			menu
//	@Produce		json
//	@Success		200	{object}	MenuResponse
//	@Router			/menu [get]
func (h *GetMenuHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Menu.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := MenuResponse{
		Items:       make([]MenuItemResponse, 0, len(items)),
		RetrievedAt: time.Now().UTC(),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, MenuItemResponse{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Category:    item.Category,
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}
