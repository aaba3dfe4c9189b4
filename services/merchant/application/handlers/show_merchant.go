package handlers

import (
	"net/http"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	"github.com/ghuser/storefront/pkg/jsonapi"
	appsvcs "github.com/ghuser/storefront/services/merchant/application/services"
)

// ShowMerchantHandler handles GET /merchants/{id}.
type ShowMerchantHandler struct {
	svc *appsvcs.Services
}

func NewShowMerchantHandler(svc *appsvcs.Services) *ShowMerchantHandler {
	return &ShowMerchantHandler{svc: svc}
}

// Execute returns one merchant.
//
//	@Summary	Get merchant
//	@Tags		merchants
//	@Produce	json
//	@Param		id	path		int	true	"Merchant ID"
//	@Success	200	{object}	MerchantDocument
//	@Failure	404	{object}	ErrorResponse
//	@Router		/merchants/{id} [get]
func (h *ShowMerchantHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	m, err := h.svc.Merchant.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	jsonapi.Write(w, http.StatusOK, jsonapi.One(MerchantSerializer{}, m))
}
