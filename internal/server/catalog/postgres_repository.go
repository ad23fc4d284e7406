package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dpatil-neu/skycatalog/internal/catalog"
	"github.com/dpatil-neu/skycatalog/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

// replaceTable loads rows into a staging copy of the table and swaps it in
// with a rename, all inside one transaction, so concurrent readers never see
// a half-replaced catalog.
func (r *PostgresRepository) replaceTable(ctx context.Context, table, insert string, rows [][]any) error {

	staging := table + "_staging"

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, staging)); err != nil {
			return fmt.Errorf("dropping stale staging table: %w", err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %s (LIKE %s INCLUDING ALL)`, staging, table)); err != nil {
			return fmt.Errorf("creating staging table: %w", err)
		}

		for _, args := range rows {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf(insert, staging), args...); err != nil {
				return fmt.Errorf("inserting into staging table: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE %s`, table)); err != nil {
			return fmt.Errorf("dropping old table: %w", err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE %s RENAME TO %s`, staging, table)); err != nil {
			return fmt.Errorf("renaming staging table: %w", err)
		}

		return nil
	})
}

func (r *PostgresRepository) ReplaceGoes(ctx context.Context, records []catalog.Record) error {

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		if len(rec.Values) != 4 {
			return fmt.Errorf("goes record %d has %d values, want 4", rec.ID, len(rec.Values))
		}
		rows = append(rows, []any{rec.ID, rec.Values[0], rec.Values[1], rec.Values[2], rec.Values[3]})
	}

	insert := `INSERT INTO %s (id, product_name, year, day, hour) VALUES ($1, $2, $3, $4, $5)`
	return r.replaceTable(ctx, "goes_catalog", insert, rows)
}

func (r *PostgresRepository) ReplaceNexrad(ctx context.Context, records []catalog.Record) error {

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		if len(rec.Values) != 4 {
			return fmt.Errorf("nexrad record %d has %d values, want 4", rec.ID, len(rec.Values))
		}
		rows = append(rows, []any{rec.ID, rec.Values[0], rec.Values[1], rec.Values[2], rec.Values[3]})
	}

	insert := `INSERT INTO %s (id, year, month, day, station_code) VALUES ($1, $2, $3, $4, $5)`
	return r.replaceTable(ctx, "nexrad_catalog", insert, rows)
}

func (r *PostgresRepository) ReplaceStations(ctx context.Context, stations []catalog.Station) error {

	rows := make([][]any, 0, len(stations))
	for _, st := range stations {
		rows = append(rows, []any{st.ID, st.Code, st.State, st.County, st.Latitude, st.Longitude, st.Elevation})
	}

	insert := `INSERT INTO %s (id, station_code, state, county, latitude, longitude, elevation) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	return r.replaceTable(ctx, "nexrad_stations", insert, rows)
}

func (r *PostgresRepository) distinct(ctx context.Context, query string, args ...any) ([]string, error) {

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return values, nil
}

func (r *PostgresRepository) GoesProducts(ctx context.Context) ([]string, error) {
	return r.distinct(ctx,
		`SELECT DISTINCT product_name FROM goes_catalog ORDER BY product_name`)
}

func (r *PostgresRepository) GoesYears(ctx context.Context, product string) ([]string, error) {
	return r.distinct(ctx,
		`SELECT DISTINCT year FROM goes_catalog WHERE product_name = $1 ORDER BY year`, product)
}

func (r *PostgresRepository) GoesDays(ctx context.Context, product, year string) ([]string, error) {
	return r.distinct(ctx,
		`SELECT DISTINCT day FROM goes_catalog WHERE product_name = $1 AND year = $2 ORDER BY day`, product, year)
}

func (r *PostgresRepository) GoesHours(ctx context.Context, product, year, day string) ([]string, error) {
	return r.distinct(ctx,
		`SELECT DISTINCT hour FROM goes_catalog WHERE product_name = $1 AND year = $2 AND day = $3 ORDER BY hour`, product, year, day)
}

func (r *PostgresRepository) NexradYears(ctx context.Context) ([]string, error) {
	return r.distinct(ctx,
		`SELECT DISTINCT year FROM nexrad_catalog ORDER BY year`)
}

func (r *PostgresRepository) NexradMonths(ctx context.Context, year string) ([]string, error) {
	return r.distinct(ctx,
		`SELECT DISTINCT month FROM nexrad_catalog WHERE year = $1 ORDER BY month`, year)
}

func (r *PostgresRepository) NexradDays(ctx context.Context, year, month string) ([]string, error) {
	return r.distinct(ctx,
		`SELECT DISTINCT day FROM nexrad_catalog WHERE year = $1 AND month = $2 ORDER BY day`, year, month)
}

func (r *PostgresRepository) NexradStations(ctx context.Context, year, month, day string) ([]string, error) {
	return r.distinct(ctx,
		`SELECT DISTINCT station_code FROM nexrad_catalog WHERE year = $1 AND month = $2 AND day = $3 ORDER BY station_code`, year, month, day)
}

func (r *PostgresRepository) StationMap(ctx context.Context) ([]catalog.Station, error) {

	query :=
		`SELECT id, station_code, state, county, latitude, longitude, elevation FROM nexrad_stations
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var stations []catalog.Station
	for rows.Next() {
		var st catalog.Station
		if err := rows.Scan(&st.ID, &st.Code, &st.State, &st.County, &st.Latitude, &st.Longitude, &st.Elevation); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return stations, nil
}
