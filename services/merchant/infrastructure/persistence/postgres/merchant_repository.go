package postgres

import (
	"context"
	"fmt"

	"github.com/ghuser/storefront/pkg/database"
	merchantdomain "github.com/ghuser/storefront/services/merchant/domain"
	"github.com/ghuser/storefront/services/merchant/domain/models"
	domainsvcs "github.com/ghuser/storefront/services/merchant/domain/services"
	"github.com/ghuser/storefront/services/merchant/infrastructure/persistence/postgres/db"
)

// MerchantRepository implements repositories.MerchantRepository against PostgreSQL.
type MerchantRepository struct {
	db *database.Database
}

// NewMerchantRepository returns a MerchantRepository backed by the given pool.
func NewMerchantRepository(database *database.Database) *MerchantRepository {
	return &MerchantRepository{db: database}
}

func (r *MerchantRepository) List(ctx context.Context) ([]*models.Merchant, error) {
	rows, err := db.New(r.db.DB()).ListMerchants(ctx)
	if err != nil {
		return nil, fmt.Errorf("query merchants: %w", err)
	}
	return rowsToMerchants(rows), nil
}

// GetByID returns ErrMerchantNotFound if no row matches.
func (r *MerchantRepository) GetByID(ctx context.Context, id int64) (*models.Merchant, error) {
	row, err := db.New(r.db.DB()).GetMerchantByID(ctx, id)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, merchantdomain.ErrMerchantNotFound
		}
		return nil, fmt.Errorf("query merchant: %w", err)
	}
	return rowToMerchant(row), nil
}

func (r *MerchantRepository) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := db.New(r.db.DB()).MerchantExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check merchant exists: %w", err)
	}
	return exists, nil
}

func (r *MerchantRepository) FindFirstByName(ctx context.Context, query string) (*models.Merchant, error) {
	row, err := db.New(r.db.DB()).FindFirstMerchantByName(ctx, domainsvcs.LikePattern(query))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, merchantdomain.ErrMerchantNotFound
		}
		return nil, fmt.Errorf("find merchant by name: %w", err)
	}
	return rowToMerchant(row), nil
}

func (r *MerchantRepository) FindAllByName(ctx context.Context, query string) ([]*models.Merchant, error) {
	rows, err := db.New(r.db.DB()).FindMerchantsByName(ctx, domainsvcs.LikePattern(query))
	if err != nil {
		return nil, fmt.Errorf("find merchants by name: %w", err)
	}
	return rowsToMerchants(rows), nil
}

// Save inserts m and assigns the generated id.
func (r *MerchantRepository) Save(ctx context.Context, m *models.Merchant) error {
	id, err := db.New(r.db.DB()).InsertMerchant(ctx, db.InsertMerchantParams{
		Name:      m.Name.String(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert merchant: %w", err)
	}
	m.ID = id
	return nil
}

func rowToMerchant(row db.Merchant) *models.Merchant {
	return &models.Merchant{
		ID:        row.ID,
		Name:      models.MerchantName(row.Name),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func rowsToMerchants(rows []db.Merchant) []*models.Merchant {
	out := make([]*models.Merchant, len(rows))
	for i, row := range rows {
		out[i] = rowToMerchant(row)
	}
	return out
}
