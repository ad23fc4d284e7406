// Package catalog turns a remote, delimiter-partitioned key-space into a
// flat set of catalog records, and parses the static NEXRAD station feed.
package catalog

// Schema describes one dataset's hierarchy: the column name for every path
// level, and optionally a fixed enumeration of top-level partitions.
//
// When Roots is empty the top level is discovered by listing at the bucket
// root; when set, the builder starts from those partitions without listing
// them. Both datasets share the same traversal code either way.
type Schema struct {
	Dataset string
	Fields  []string
	Roots   []string
}

// Depth returns the number of hierarchy levels in a full leaf path.
func (s Schema) Depth() int {
	return len(s.Fields)
}

// Record is one leaf of the hierarchy: a dense sequential ID assigned in
// traversal order and one value per schema field.
type Record struct {
	ID     int64
	Values []string
}

// GoesSchema is the GOES-18 imagery hierarchy: product/year/day/hour. The
// product list mirrors the archive's radiance product used by the dashboards.
func GoesSchema(products []string) Schema {
	if len(products) == 0 {
		products = []string{"ABI-L1b-RadC"}
	}
	return Schema{
		Dataset: "goes18",
		Fields:  []string{"product_name", "year", "day", "hour"},
		Roots:   products,
	}
}

// NexradSchema is the NEXRAD level-2 hierarchy: year/month/day/station.
func NexradSchema(years []string) Schema {
	if len(years) == 0 {
		years = []string{"2022", "2023"}
	}
	return Schema{
		Dataset: "nexrad",
		Fields:  []string{"year", "month", "day", "station_code"},
		Roots:   years,
	}
}
