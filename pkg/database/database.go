// Package database owns the PostgreSQL connection pool shared by every
// repository, the event bus and the migrator.
//
// The pool is a pgxpool.Pool; DB() exposes the same pool through database/sql
// for code that speaks *sql.DB / *sql.Tx (generated queries, goose, watermill-sql).
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/ghuser/storefront/pkg/logger"
)

const pingTimeout = 5 * time.Second

// Database wraps the pgx pool and its database/sql view.
type Database struct {
	pool *pgxpool.Pool
	db   *sql.DB
	log  logger.Logger
}

// Options tunes the pool. Zero values keep pgx defaults.
type Options struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	// LogQueries traces every statement at debug level.
	LogQueries bool
}

// NewPool parses url, opens a pool and pings it so startup fails fast when
// the database is down.
func NewPool(ctx context.Context, url string, log logger.Logger, opts ...Options) (*Database, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("database: parse config: %w", err)
	}

	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxConns > 0 {
		cfg.MaxConns = o.MaxConns
	}
	if o.MinConns > 0 {
		cfg.MinConns = o.MinConns
	}
	if o.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = o.MaxConnLifetime
	}
	if o.LogQueries {
		cfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   queryLogger(log),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database: create pool: %w", err)
	}

	d := &Database{pool: pool, db: stdlib.OpenDBFromPool(pool), log: log}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := d.Ping(pingCtx); err != nil {
		d.Close()
		return nil, err
	}

	log.Info("database connected", "max_conns", cfg.MaxConns)
	return d, nil
}

// Pool returns the native pgx pool.
func (d *Database) Pool() *pgxpool.Pool {
	return d.pool
}

// DB returns the pool wrapped as *sql.DB.
func (d *Database) DB() *sql.DB {
	return d.db
}

// WithTx runs fn inside a transaction. fn's error rolls the transaction back;
// otherwise it is committed.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database: begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("database: rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("database: commit: %w", err)
	}
	return nil
}

// Ping checks the database connection health.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Close releases every pooled connection.
func (d *Database) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}
	d.pool.Close()
}

// queryLogger adapts logger.Logger to pgx's tracelog.
func queryLogger(log logger.Logger) tracelog.Logger {
	return tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		args := make([]any, 0, len(data)*2)
		for k, v := range data {
			args = append(args, k, v)
		}
		switch level {
		case tracelog.LogLevelError:
			log.ErrorContext(ctx, "pgx: "+msg, args...)
		case tracelog.LogLevelWarn:
			log.WarnContext(ctx, "pgx: "+msg, args...)
		case tracelog.LogLevelInfo:
			log.InfoContext(ctx, "pgx: "+msg, args...)
		default:
			log.DebugContext(ctx, "pgx: "+msg, args...)
		}
	})
}

// IsNoRows reports whether err means a single-row query found nothing,
// whichever driver surface produced it.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
