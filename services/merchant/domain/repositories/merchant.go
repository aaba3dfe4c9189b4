package repositories

import (
	"context"

	"github.com/ghuser/storefront/services/merchant/domain/models"
)

// MerchantRepository is the persistence interface for the Merchant aggregate.
// The domain layer owns this interface; infrastructure implements it.
type MerchantRepository interface {
	// List returns every merchant ordered by id.
	List(ctx context.Context) ([]*models.Merchant, error)

	// GetByID returns ErrMerchantNotFound when no merchant has id.
	GetByID(ctx context.Context, id int64) (*models.Merchant, error)

	Exists(ctx context.Context, id int64) (bool, error)

	// FindFirstByName returns the first merchant, by name then id, whose name
	// contains query case-insensitively, or ErrMerchantNotFound.
	FindFirstByName(ctx context.Context, query string) (*models.Merchant, error)

	// FindAllByName returns every merchant whose name contains query
	// case-insensitively, ordered by name then id.
	FindAllByName(ctx context.Context, query string) ([]*models.Merchant, error)

	// Save inserts m and sets its ID.
	Save(ctx context.Context, m *models.Merchant) error
}
