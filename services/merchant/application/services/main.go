package services

import (
	"github.com/ghuser/storefront/pkg/app"
	"github.com/ghuser/storefront/services/merchant/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Merchant *MerchantService
}

// New wires all merchant application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewMerchantRepository(a.Db)
	return &Services{
		Merchant: NewMerchantService(repo, a.Metrics, a.Logger),
	}
}
