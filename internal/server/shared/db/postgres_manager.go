package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dpatil-neu/skycatalog/internal/server/accesslog"
	"github.com/dpatil-neu/skycatalog/internal/server/catalog"
	"github.com/dpatil-neu/skycatalog/internal/server/migrations"
	"github.com/dpatil-neu/skycatalog/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	users     users.Repository
	accessLog accesslog.Repository
	catalog   catalog.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) AccessLog() accesslog.Repository {
	return m.accessLog
}

func (m *PostgresRepositoryManager) Catalog() catalog.Repository {
	return m.catalog
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	users, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	accessLog, err := accesslog.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("access log repo creation error: %w", err)
	}

	catalog, err := catalog.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("catalog repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		users:     users,
		accessLog: accessLog,
		catalog:   catalog,
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
