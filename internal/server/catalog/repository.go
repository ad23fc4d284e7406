// Package catalog persists and serves the flattened dataset catalogs built
// by the scraper: the GOES-18 and NEXRAD hierarchy tables and the station
// reference table. The scraper is the sole writer; the API server only
// reads.
package catalog

import (
	"context"

	"github.com/dpatil-neu/skycatalog/internal/catalog"
)

type Repository interface {
	// Replace* swap in a freshly built record set as the authoritative
	// content of the corresponding table. The previous content is fully
	// superseded; rows are never updated individually.
	ReplaceGoes(ctx context.Context, records []catalog.Record) error
	ReplaceNexrad(ctx context.Context, records []catalog.Record) error
	ReplaceStations(ctx context.Context, stations []catalog.Station) error

	// Distinct dimension values, narrowed level by level.
	GoesProducts(ctx context.Context) ([]string, error)
	GoesYears(ctx context.Context, product string) ([]string, error)
	GoesDays(ctx context.Context, product, year string) ([]string, error)
	GoesHours(ctx context.Context, product, year, day string) ([]string, error)

	NexradYears(ctx context.Context) ([]string, error)
	NexradMonths(ctx context.Context, year string) ([]string, error)
	NexradDays(ctx context.Context, year, month string) ([]string, error)
	NexradStations(ctx context.Context, year, month, day string) ([]string, error)

	StationMap(ctx context.Context) ([]catalog.Station, error)
}
