package handlers

import (
	"net/http"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/jsonapi"
	appsvcs "github.com/ghuser/storefront/services/merchant/application/services"
)

// EmptyMerchantDocument documents the no-match body of /merchants/find.
type EmptyMerchantDocument struct {
	Data struct {
		ID         *string  `json:"id"`
		Type       *string  `json:"type"`
		Attributes struct{} `json:"attributes"`
	} `json:"data"`
} // @name EmptyMerchantDocument

// FindMerchantHandler handles GET /merchants/find?name=.
type FindMerchantHandler struct {
	svc *appsvcs.Services
}

func NewFindMerchantHandler(svc *appsvcs.Services) *FindMerchantHandler {
	return &FindMerchantHandler{svc: svc}
}

// Execute returns the first merchant, by name, whose name contains the query.
// No match is still a 200 with a null id and type.
//
//	@Summary		Find merchant by name
//	@Description	Case-insensitive substring match; returns {"data":{"id":null,"type":null,"attributes":{}}} when nothing matches
//	@Tags			merchants
//	@Produce		json
//	@Param			name	query		string	false	"Name fragment"
//	@Success		200		{object}	MerchantDocument
//	@Router			/merchants/find [get]
func (h *FindMerchantHandler) Execute(w http.ResponseWriter, r *http.Request) {
	m, ok, err := h.svc.Merchant.FindByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	if !ok {
		jsonapi.Write(w, http.StatusOK, jsonapi.EmptyShell())
		return
	}
	jsonapi.Write(w, http.StatusOK, jsonapi.One(MerchantSerializer{}, m))
}
