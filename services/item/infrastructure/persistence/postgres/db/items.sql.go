package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const itemColumns = `id, name, description, unit_price, merchant_id, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (Item, error) {
	var i Item
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.UnitPrice, &i.MerchantID, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

func scanItems(rows *sql.Rows) ([]Item, error) {
	defer rows.Close() //nolint:errcheck
	var items []Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listItems = `SELECT ` + itemColumns + ` FROM items ORDER BY id`

func (q *Queries) ListItems(ctx context.Context) ([]Item, error) {
	rows, err := q.db.QueryContext(ctx, listItems)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

const listItemsByMerchant = `SELECT ` + itemColumns + ` FROM items WHERE merchant_id = $1 ORDER BY id`

func (q *Queries) ListItemsByMerchant(ctx context.Context, merchantID int64) ([]Item, error) {
	rows, err := q.db.QueryContext(ctx, listItemsByMerchant, merchantID)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

const getItemByID = `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

func (q *Queries) GetItemByID(ctx context.Context, id int64) (Item, error) {
	return scanItem(q.db.QueryRowContext(ctx, getItemByID, id))
}

const insertItem = `INSERT INTO items (name, description, unit_price, merchant_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

type InsertItemParams struct {
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	MerchantID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, insertItem,
		arg.Name, arg.Description, arg.UnitPrice, arg.MerchantID, arg.CreatedAt, arg.UpdatedAt,
	).Scan(&id)
	return id, err
}

const updateItem = `UPDATE items
SET name        = COALESCE($2, name),
    description = COALESCE($3, description),
    unit_price  = COALESCE($4, unit_price),
    merchant_id = COALESCE($5, merchant_id),
    updated_at  = $6
WHERE id = $1
RETURNING ` + itemColumns

// UpdateItemParams leaves a column untouched when its field is null.
type UpdateItemParams struct {
	ID          int64
	Name        sql.NullString
	Description sql.NullString
	UnitPrice   decimal.NullDecimal
	MerchantID  sql.NullInt64
	UpdatedAt   time.Time
}

// UpdateItem returns the stored row after the update, or sql.ErrNoRows.
func (q *Queries) UpdateItem(ctx context.Context, arg UpdateItemParams) (Item, error) {
	return scanItem(q.db.QueryRowContext(ctx, updateItem,
		arg.ID, arg.Name, arg.Description, arg.UnitPrice, arg.MerchantID, arg.UpdatedAt,
	))
}

const deleteItem = `DELETE FROM items WHERE id = $1 RETURNING merchant_id`

// DeleteItem returns the owner of the removed row, or sql.ErrNoRows.
func (q *Queries) DeleteItem(ctx context.Context, id int64) (int64, error) {
	var merchantID int64
	err := q.db.QueryRowContext(ctx, deleteItem, id).Scan(&merchantID)
	return merchantID, err
}
