// Package db holds the SQL for the items table. Queries run against a
// *sql.DB or a *sql.Tx through DBTX.
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries runs item queries on a DBTX.
type Queries struct {
	db DBTX
}

// New returns Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Item is one row of the items table. unit_price is NUMERIC and scans
// through decimal.Decimal without loss.
type Item struct {
	ID          int64
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	MerchantID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
