package handlers

import (
	"net/http"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/jsonapi"
	appsvcs "github.com/ghuser/storefront/services/merchant/application/services"
)

// ListMerchantsHandler handles GET /merchants.
type ListMerchantsHandler struct {
	svc *appsvcs.Services
}

func NewListMerchantsHandler(svc *appsvcs.Services) *ListMerchantsHandler {
	return &ListMerchantsHandler{svc: svc}
}

// Execute lists every merchant.
//
//	@Summary	List merchants
//	@Tags		merchants
//	@Produce	json
//	@Success	200	{object}	MerchantListDocument
//	@Router		/merchants [get]
func (h *ListMerchantsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	merchants, err := h.svc.Merchant.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	jsonapi.Write(w, http.StatusOK, jsonapi.Many(MerchantSerializer{}, merchants))
}
