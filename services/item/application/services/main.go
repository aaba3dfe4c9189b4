package services

import (
	"github.com/ghuser/storefront/pkg/app"
	"github.com/ghuser/storefront/pkg/cache"
	"github.com/ghuser/storefront/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the
// Application container. merchants is the merchant context's service.
func New(a *app.Application, merchants Merchants) *Services {
	repo := postgres.NewItemRepository(a.Db, a.EventBus)
	var itemCache Cache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis, a.Config.ItemCacheTTL)
	}
	return &Services{
		Item: NewItemService(repo, merchants, itemCache, a.Metrics, a.Logger),
	}
}
