package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	"github.com/ghuser/storefront/pkg/jsonapi"
	appsvcs "github.com/ghuser/storefront/services/merchant/application/services"
)

// ItemOwners resolves the merchant that owns an item. The item context
// implements it and returns its own not-found error for unknown items.
type ItemOwners interface {
	MerchantIDOf(ctx context.Context, itemID int64) (int64, error)
}

// ItemMerchantHandler handles GET /items/{id}/merchant.
type ItemMerchantHandler struct {
	svc   *appsvcs.Services
	items ItemOwners
}

func NewItemMerchantHandler(svc *appsvcs.Services, items ItemOwners) *ItemMerchantHandler {
	return &ItemMerchantHandler{svc: svc, items: items}
}

// Execute returns the merchant that owns the item.
//
//	@Summary	Get an item's merchant
//	@Tags		items
//	@Produce	json
//	@Param		id	path		int	true	"Item ID"
//	@Success	200	{object}	MerchantDocument
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id}/merchant [get]
func (h *ItemMerchantHandler) Execute(w http.ResponseWriter, r *http.Request) {
	itemID, err := httpx.IDParam(r, "id")
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	merchantID, err := h.items.MerchantIDOf(r.Context(), itemID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	m, err := h.svc.Merchant.GetByID(r.Context(), merchantID)
	if err != nil {
		// The foreign key makes this unreachable unless the row vanished mid-request.
		errhttp.WriteError(w, r, fmt.Errorf("owner of item %d: %w", itemID, err))
		return
	}
	jsonapi.Write(w, http.StatusOK, jsonapi.One(MerchantSerializer{}, m))
}
