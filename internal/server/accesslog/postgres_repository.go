package accesslog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Append(ctx context.Context, entry *Entry) error {

	query :=
		`INSERT INTO access_log (ts, username, endpoint, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.Timestamp, entry.Username, entry.Endpoint, entry.Status).Scan(&entry.ID)

	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}

func (r *PostgresRepository) CountSince(ctx context.Context, username string, since time.Time) (int, error) {

	query :=
		`SELECT COUNT(*) FROM access_log
		 WHERE username = $1 AND ts >= $2
		 `

	var count int
	err := r.db.QueryRowContext(ctx, query, username, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}

	return count, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, username string, since time.Time) ([]Entry, error) {

	query :=
		`SELECT id, ts, username, endpoint, status FROM access_log
		 WHERE username = $1 AND ts >= $2
		 ORDER BY ts
		 `

	rows, err := r.db.QueryContext(ctx, query, username, since)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *PostgresRepository) ListAll(ctx context.Context, since time.Time) ([]Entry, error) {

	query :=
		`SELECT id, ts, username, endpoint, status FROM access_log
		 WHERE ts >= $1
		 ORDER BY ts
		 `

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Username, &e.Endpoint, &e.Status); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return entries, nil
}
