package repositories

import (
	"context"

	"github.com/ghuser/storefront/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Implementations that carry an event bus publish the item events in the
// same transaction as the write.
type ItemRepository interface {
	// List returns every item ordered by id.
	List(ctx context.Context) ([]*models.Item, error)

	// ListByMerchant returns the merchant's items ordered by id.
	ListByMerchant(ctx context.Context, merchantID int64) ([]*models.Item, error)

	// GetByID returns ErrItemNotFound if no item has id.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// Save inserts item and sets its ID. Returns ErrMerchantMustExist when the
	// store rejects the owner reference.
	Save(ctx context.Context, item *models.Item) error

	// Update writes only the attributes named in changed, plus updated_at, so
	// concurrent patches of different attributes do not overwrite each other.
	// item is then refreshed from the stored row. Returns ErrItemNotFound if
	// no item has item.ID.
	Update(ctx context.Context, item *models.Item, changed []string) error

	// Delete removes an item. Returns ErrItemNotFound if no item has id.
	Delete(ctx context.Context, id int64) error
}
