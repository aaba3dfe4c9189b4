package handlers

import (
	"net/http"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/jsonapi"
	appsvcs "github.com/ghuser/storefront/services/merchant/application/services"
)

// FindAllMerchantsHandler handles GET /merchants/find_all?name=.
type FindAllMerchantsHandler struct {
	svc *appsvcs.Services
}

func NewFindAllMerchantsHandler(svc *appsvcs.Services) *FindAllMerchantsHandler {
	return &FindAllMerchantsHandler{svc: svc}
}

// Execute lists every merchant whose name contains the query, ordered by name.
//
//	@Summary	Find all merchants by name
//	@Tags		merchants
//	@Produce	json
//	@Param		name	query		string	false	"Name fragment"
//	@Success	200		{object}	MerchantListDocument
//	@Router		/merchants/find_all [get]
func (h *FindAllMerchantsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	merchants, err := h.svc.Merchant.FindAllByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	jsonapi.Write(w, http.StatusOK, jsonapi.Many(MerchantSerializer{}, merchants))
}
