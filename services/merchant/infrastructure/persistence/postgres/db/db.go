// Package db holds the SQL for the merchants table. Queries run against a
// *sql.DB or a *sql.Tx through DBTX.
package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries runs merchant queries on a DBTX.
type Queries struct {
	db DBTX
}

// New returns Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Merchant is one row of the merchants table.
type Merchant struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
