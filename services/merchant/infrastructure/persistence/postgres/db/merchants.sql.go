package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const merchantColumns = `id, name, created_at, updated_at`

const listMerchants = `SELECT ` + merchantColumns + ` FROM merchants ORDER BY id`

func (q *Queries) ListMerchants(ctx context.Context) ([]Merchant, error) {
	rows, err := q.db.QueryContext(ctx, listMerchants)
	if err != nil {
		return nil, err
	}
	return scanMerchants(rows)
}

const getMerchantByID = `SELECT ` + merchantColumns + ` FROM merchants WHERE id = $1`

func (q *Queries) GetMerchantByID(ctx context.Context, id int64) (Merchant, error) {
	var m Merchant
	err := q.db.QueryRowContext(ctx, getMerchantByID, id).
		Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const merchantExists = `SELECT EXISTS(SELECT 1 FROM merchants WHERE id = $1)`

func (q *Queries) MerchantExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, merchantExists, id).Scan(&exists)
	return exists, err
}

// pattern is a LIKE pattern with backslash escapes. Names sort by byte value
// whatever the database collation, the same order the in-memory store uses.
const findMerchantsByName = `SELECT ` + merchantColumns + ` FROM merchants
WHERE name ILIKE $1 ESCAPE '\'
ORDER BY name COLLATE "C", id`

func (q *Queries) FindMerchantsByName(ctx context.Context, pattern string) ([]Merchant, error) {
	rows, err := q.db.QueryContext(ctx, findMerchantsByName, pattern)
	if err != nil {
		return nil, err
	}
	return scanMerchants(rows)
}

const findFirstMerchantByName = findMerchantsByName + ` LIMIT 1`

func (q *Queries) FindFirstMerchantByName(ctx context.Context, pattern string) (Merchant, error) {
	var m Merchant
	err := q.db.QueryRowContext(ctx, findFirstMerchantByName, pattern).
		Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const insertMerchant = `INSERT INTO merchants (name, created_at, updated_at)
VALUES ($1, $2, $3)
RETURNING id`

type InsertMerchantParams struct {
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) InsertMerchant(ctx context.Context, arg InsertMerchantParams) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, insertMerchant, arg.Name, arg.CreatedAt, arg.UpdatedAt).Scan(&id)
	return id, err
}

func scanMerchants(rows *sql.Rows) ([]Merchant, error) {
	defer rows.Close() //nolint:errcheck
	var items []Merchant
	for rows.Next() {
		var m Merchant
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan merchant: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
