package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB is the connection pool shared by the run, ledger and OHLC
// repositories of one simulation run.
type DB struct {
	*sql.DB
}

// NewDB opens a pool sized for the simulation's write pattern: every
// insert comes from the single event-loop goroutine, one row per
// economic event, so the pool is capped at two connections and long
// runs recycle them. dsn is a lib/pq connection string, e.g.
// "host=localhost port=5432 user=postgres dbname=economy_sim sslmode=disable".
func NewDB(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.DB.Close()
}
