package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ghuser/storefront/pkg/database"
	"github.com/ghuser/storefront/pkg/events"
	itemdomain "github.com/ghuser/storefront/services/item/domain"
	domainevents "github.com/ghuser/storefront/services/item/domain/events"
	"github.com/ghuser/storefront/services/item/domain/models"
	"github.com/ghuser/storefront/services/item/infrastructure/persistence/postgres/db"
)

const merchantFK = "items_merchant_id_fkey"

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.Bus
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. Writes publish their item event through bus in the same
// transaction; a nil bus publishes nothing.
func NewItemRepository(database *database.Database, bus *events.Bus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return rowsToItems(rows), nil
}

func (r *ItemRepository) ListByMerchant(ctx context.Context, merchantID int64) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItemsByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("query merchant items: %w", err)
	}
	return rowsToItems(rows), nil
}

// GetByID returns ErrItemNotFound if no row matches.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItemByID(ctx, id)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// Save persists a new Item and publishes an ItemCreatedEvent within the same transaction.
// Returns ErrMerchantMustExist on foreign key violations.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		id, err := db.New(tx).InsertItem(ctx, db.InsertItemParams{
			Name:        item.Name,
			Description: item.Description,
			UnitPrice:   item.UnitPrice,
			MerchantID:  item.MerchantID,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		})
		if err != nil {
			if database.IsForeignKeyViolation(err, merchantFK) {
				return itemdomain.ErrMerchantMustExist
			}
			return fmt.Errorf("insert item: %w", err)
		}
		item.ID = id
		return r.publish(ctx, tx, domainevents.TopicItemCreated, domainevents.NewItemCreated(item))
	})
}

// Update writes the changed columns and publishes an ItemUpdatedEvent. Columns
// not in changed keep whatever the row holds at write time.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item, changed []string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).UpdateItem(ctx, updateParams(item, changed))
		if err != nil {
			if database.IsNoRows(err) {
				return itemdomain.ErrItemNotFound
			}
			if database.IsForeignKeyViolation(err, merchantFK) {
				return itemdomain.ErrMerchantMustExist
			}
			return fmt.Errorf("update item: %w", err)
		}
		*item = *rowToItem(row)
		return r.publish(ctx, tx, domainevents.TopicItemUpdated, domainevents.NewItemUpdated(item, changed))
	})
}

func updateParams(item *models.Item, changed []string) db.UpdateItemParams {
	arg := db.UpdateItemParams{ID: item.ID, UpdatedAt: item.UpdatedAt}
	for _, attr := range changed {
		switch attr {
		case models.AttrName:
			arg.Name = sql.NullString{String: item.Name, Valid: true}
		case models.AttrDescription:
			arg.Description = sql.NullString{String: item.Description, Valid: true}
		case models.AttrUnitPrice:
			arg.UnitPrice = decimal.NullDecimal{Decimal: item.UnitPrice, Valid: true}
		case models.AttrMerchantID:
			arg.MerchantID = sql.NullInt64{Int64: item.MerchantID, Valid: true}
		}
	}
	return arg
}

// Delete removes an item and publishes an ItemDeletedEvent.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		merchantID, err := db.New(tx).DeleteItem(ctx, id)
		if err != nil {
			if database.IsNoRows(err) {
				return itemdomain.ErrItemNotFound
			}
			return fmt.Errorf("delete item: %w", err)
		}
		return r.publish(ctx, tx, domainevents.TopicItemDeleted, domainevents.NewItemDeleted(id, merchantID))
	})
}

func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, topic string, event any) error {
	if r.bus == nil {
		return nil
	}
	if err := r.bus.PublishTx(ctx, tx, topic, event); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// rowToItem maps a db.Item to a domain models.Item.
func rowToItem(row db.Item) *models.Item {
	return &models.Item{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		UnitPrice:   row.UnitPrice,
		MerchantID:  row.MerchantID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func rowsToItems(rows []db.Item) []*models.Item {
	out := make([]*models.Item, len(rows))
	for i, row := range rows {
		out[i] = rowToItem(row)
	}
	return out
}
