package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	builder "github.com/dpatil-neu/skycatalog/internal/catalog"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	repo, err := NewPostgresRepository(db)
	if err != nil {
		t.Fatalf("NewPostgresRepository error: %v", err)
	}
	return repo, mock, db
}

func TestReplaceGoes_StagingSwapInOneTx(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	records := []builder.Record{
		{ID: 1, Values: []string{"ABI-L1b-RadC", "2022", "001", "00"}},
		{ID: 2, Values: []string{"ABI-L1b-RadC", "2022", "001", "01"}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`^DROP TABLE IF EXISTS goes_catalog_staging$`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^CREATE TABLE goes_catalog_staging \(LIKE goes_catalog INCLUDING ALL\)$`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^INSERT INTO goes_catalog_staging`).
		WithArgs(int64(1), "ABI-L1b-RadC", "2022", "001", "00").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^INSERT INTO goes_catalog_staging`).
		WithArgs(int64(2), "ABI-L1b-RadC", "2022", "001", "01").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^DROP TABLE goes_catalog$`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^ALTER TABLE goes_catalog_staging RENAME TO goes_catalog$`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.ReplaceGoes(context.Background(), records); err != nil {
		t.Fatalf("ReplaceGoes error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplaceGoes_RejectsWrongWidth(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	err := repo.ReplaceGoes(context.Background(), []builder.Record{{ID: 1, Values: []string{"only", "three", "values"}}})
	if err == nil {
		t.Fatalf("expected width validation error")
	}
}

func TestGoesYears_Parameterized(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"year"}).AddRow("2022").AddRow("2023")
	mock.ExpectQuery(`^SELECT DISTINCT year FROM goes_catalog WHERE product_name = \$1 ORDER BY year$`).
		WithArgs("ABI-L1b-RadC").
		WillReturnRows(rows)

	years, err := repo.GoesYears(context.Background(), "ABI-L1b-RadC")
	if err != nil {
		t.Fatalf("GoesYears error: %v", err)
	}
	if len(years) != 2 || years[0] != "2022" || years[1] != "2023" {
		t.Fatalf("unexpected years: %v", years)
	}
}

func TestGoesYears_EmptyResult(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT DISTINCT year FROM goes_catalog WHERE product_name = \$1 ORDER BY year$`).
		WithArgs("no-such-product").
		WillReturnRows(sqlmock.NewRows([]string{"year"}))

	years, err := repo.GoesYears(context.Background(), "no-such-product")
	if err != nil {
		t.Fatalf("GoesYears error: %v", err)
	}
	if len(years) != 0 {
		t.Fatalf("expected empty result, got %v", years)
	}
}

func TestNexradStations_Parameterized(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"station_code"}).AddRow("KABX")
	mock.ExpectQuery(`^SELECT DISTINCT station_code FROM nexrad_catalog WHERE year = \$1 AND month = \$2 AND day = \$3 ORDER BY station_code$`).
		WithArgs("2022", "06", "30").
		WillReturnRows(rows)

	stations, err := repo.NexradStations(context.Background(), "2022", "06", "30")
	if err != nil {
		t.Fatalf("NexradStations error: %v", err)
	}
	if len(stations) != 1 || stations[0] != "KABX" {
		t.Fatalf("unexpected stations: %v", stations)
	}
}

func TestStationMap_ScansAllColumns(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "station_code", "state", "county", "latitude", "longitude", "elevation"}).
		AddRow(int64(1), "KABX", "NM", "BERNALILLO", 35.14972, -106.82333, 5870)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*station_code,\s*state,\s*county,\s*latitude,\s*longitude,\s*elevation\s+FROM\s+nexrad_stations`).
		WillReturnRows(rows)

	stations, err := repo.StationMap(context.Background())
	if err != nil {
		t.Fatalf("StationMap error: %v", err)
	}
	if len(stations) != 1 || stations[0].Code != "KABX" || stations[0].Elevation != 5870 {
		t.Fatalf("unexpected stations: %+v", stations)
	}
}
