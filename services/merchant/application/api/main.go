package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/storefront/services/merchant/application/handlers"
	appsvcs "github.com/ghuser/storefront/services/merchant/application/services"
)

// MerchantRoutes registers merchant endpoints on the provided chi router.
// Routes are flat so the item context can register /merchants/{id}/items
// on the same router.
func MerchantRoutes(r chi.Router, svcs *appsvcs.Services, items handlers.ItemOwners) {
	r.Get("/merchants", handlers.NewListMerchantsHandler(svcs).Execute)
	r.Get("/merchants/find", handlers.NewFindMerchantHandler(svcs).Execute)
	r.Get("/merchants/find_all", handlers.NewFindAllMerchantsHandler(svcs).Execute)
	r.Get("/merchants/{id}", handlers.NewShowMerchantHandler(svcs).Execute)
	r.Get("/items/{id}/merchant", handlers.NewItemMerchantHandler(svcs, items).Execute)
}
