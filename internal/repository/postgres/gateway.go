// Package postgres implements the storage interfaces on PostgreSQL using
// database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	_ "github.com/lib/pq"
)

// ErrMissingDSN is returned by Open when no connection string is configured.
var ErrMissingDSN = errors.New("postgres: connection string is empty")

// Gateway owns the process-wide database handle. Open establishes the pool
// exactly once and is safe to call redundantly at the start of any
// operation; Close is the shutdown hook.
type Gateway struct {
	dsn string

	once sync.Once
	db   *sql.DB
	err  error
}

// NewGateway returns an unopened Gateway for the given connection string.
func NewGateway(dsn string) *Gateway {
	return &Gateway{dsn: dsn}
}

// Open returns the shared *sql.DB, establishing and pinging the connection
// on first use. Subsequent calls return the same handle (or the same
// connection error).
func (g *Gateway) Open(ctx context.Context) (*sql.DB, error) {
	g.once.Do(func() {
		if g.dsn == "" {
			g.err = ErrMissingDSN
			return
		}
		db, err := sql.Open("postgres", g.dsn)
		if err != nil {
			g.err = err
			return
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			g.err = err
			return
		}
		g.db = db
	})
	return g.db, g.err
}

// Close releases the pool. Safe to call when Open never succeeded.
func (g *Gateway) Close() error {
	if g.db == nil {
		return nil
	}
	return g.db.Close()
}
