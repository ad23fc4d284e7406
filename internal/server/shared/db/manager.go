// Package db wires the Postgres-backed repositories behind a single manager
// so the application layer deals with one dependency instead of four.
package db

import (
	"context"
	"database/sql"

	"github.com/dpatil-neu/skycatalog/internal/server/accesslog"
	"github.com/dpatil-neu/skycatalog/internal/server/catalog"
	"github.com/dpatil-neu/skycatalog/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	AccessLog() accesslog.Repository
	Catalog() catalog.Repository
}
