package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/jsonapi"
	pkgvalidator "github.com/ghuser/storefront/pkg/validator"
	appsvcs "github.com/ghuser/storefront/services/item/application/services"
)

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Creates an item owned by an existing merchant. Omitted attributes default to empty or zero.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ItemRequest	true	"Item attributes"
//	@Success		201		{object}	ItemDocument
//	@Failure		400		{object}	ValidationErrorResponse
//	@Failure		413		{object}	ValidationErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ItemRequest](w, r)
	if !ok {
		return
	}
	if req.Item.empty() {
		writeItemMissing(w)
		return
	}

	in := appsvcs.ItemInput{}
	if req.Item.Name != nil {
		in.Name = *req.Item.Name
	}
	if req.Item.Description != nil {
		in.Description = *req.Item.Description
	}
	if req.Item.UnitPrice != nil {
		in.UnitPrice = decimal.Decimal(*req.Item.UnitPrice)
	}
	if req.Item.MerchantID != nil {
		in.MerchantID = *req.Item.MerchantID
	}

	item, err := h.svc.Item.Create(r.Context(), in)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	jsonapi.Write(w, http.StatusCreated, jsonapi.One(ItemSerializer{}, item))
}

// writeItemMissing rejects a body whose "item" holds no permitted attribute,
// the same way a missing "item" key is rejected.
func writeItemMissing(w http.ResponseWriter) {
	jsonapi.WriteErrors(w, http.StatusBadRequest, jsonapi.FieldErrors{"item": {"is missing"}})
}
