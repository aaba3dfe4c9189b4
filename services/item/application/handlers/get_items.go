package handlers

import (
	"net/http"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	"github.com/ghuser/storefront/pkg/jsonapi"
	appsvcs "github.com/ghuser/storefront/services/item/application/services"
)

// ListItemsHandler handles GET /items.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists every item.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Success	200	{object}	ItemListDocument
//	@Router		/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	jsonapi.Write(w, http.StatusOK, jsonapi.Many(ItemSerializer{}, items))
}

// ShowItemHandler handles GET /items/{id}.
type ShowItemHandler struct {
	svc *appsvcs.Services
}

func NewShowItemHandler(svc *appsvcs.Services) *ShowItemHandler {
	return &ShowItemHandler{svc: svc}
}

// Execute returns one item.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		int	true	"Item ID"
//	@Success	200	{object}	ItemDocument
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id} [get]
func (h *ShowItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	item, err := h.svc.Item.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	jsonapi.Write(w, http.StatusOK, jsonapi.One(ItemSerializer{}, item))
}

// MerchantItemsHandler handles GET /merchants/{id}/items.
type MerchantItemsHandler struct {
	svc *appsvcs.Services
}

func NewMerchantItemsHandler(svc *appsvcs.Services) *MerchantItemsHandler {
	return &MerchantItemsHandler{svc: svc}
}

// Execute lists the items a merchant owns.
//
//	@Summary	List a merchant's items
//	@Tags		merchants
//	@Produce	json
//	@Param		id	path		int	true	"Merchant ID"
//	@Success	200	{object}	ItemListDocument
//	@Failure	404	{object}	ErrorResponse
//	@Router		/merchants/{id}/items [get]
func (h *MerchantItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	merchantID, err := httpx.IDParam(r, "id")
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	items, err := h.svc.Item.ListByMerchant(r.Context(), merchantID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	jsonapi.Write(w, http.StatusOK, jsonapi.Many(ItemSerializer{}, items))
}
