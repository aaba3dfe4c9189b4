package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/storefront/services/item/application/handlers"
	appsvcs "github.com/ghuser/storefront/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router. Routes are
// flat because the merchant context registers /items/{id}/merchant on the
// same router.
func ItemRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Get("/items", handlers.NewListItemsHandler(svcs).Execute)
	r.Post("/items", handlers.NewPostItemHandler(svcs).Execute)
	r.Get("/items/{id}", handlers.NewShowItemHandler(svcs).Execute)
	r.Patch("/items/{id}", handlers.NewPatchItemHandler(svcs).Execute)
	r.Delete("/items/{id}", handlers.NewDeleteItemHandler(svcs).Execute)
	r.Get("/merchants/{id}/items", handlers.NewMerchantItemsHandler(svcs).Execute)
}
