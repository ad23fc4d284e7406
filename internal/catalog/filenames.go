package catalog

import (
	"regexp"
	"strings"

	"github.com/dpatil-neu/skycatalog/internal/common"
)

// Archive object names encode their own location in the bucket hierarchy.
// The patterns below anchor at the start only: a valid stem with trailing
// content (the ".nc" extension, a volume suffix) still matches.
var (
	goesFileRe = regexp.MustCompile(`^OR_[A-Z]{3}-[A-Za-z0-9]{2,3}-[A-Za-z0-9]{4,6}-[A-Z0-9]{2,5}_G18_s\d{14}_e\d{14}_c\d{14}`)

	nexradFileRe = regexp.MustCompile(`^[A-Z]{3}[A-Z0-9][0-9]{8}_[0-9]{6}`)

	trailingDigitsRe = regexp.MustCompile(`[0-9]+$`)
)

// ValidGoesFileName reports whether name looks like a GOES-18 ABI object name.
func ValidGoesFileName(name string) bool {
	return goesFileRe.MatchString(name)
}

// ValidNexradFileName reports whether name looks like a NEXRAD level-2
// volume name.
func ValidNexradFileName(name string) bool {
	return nexradFileRe.MatchString(name)
}

// GoesObjectKey derives the object's full bucket key from its name:
// product/year/day/hour/name. The product is the first three dash-separated
// segments of the second underscore field, with any mode/channel digits
// stripped from the third segment; year, day-of-year and hour come from the
// scan-start timestamp.
func GoesObjectKey(name string) (string, error) {
	if !ValidGoesFileName(name) {
		return "", common.ErrInvalidFileName
	}

	parts := strings.Split(name, "_")
	seg := strings.Split(parts[1], "-")
	product := seg[0] + "-" + seg[1] + "-" + trailingDigitsRe.ReplaceAllString(seg[2], "")

	// parts[3] is "s" + yyyydddhhmmsst
	start := parts[3]
	year := start[1:5]
	day := start[5:8]
	hour := start[8:10]

	return product + "/" + year + "/" + day + "/" + hour + "/" + name, nil
}

// NexradObjectKey derives the object's full bucket key from its name:
// year/month/day/station/name. The station call sign is the first four
// characters and the date follows immediately after.
func NexradObjectKey(name string) (string, error) {
	if !ValidNexradFileName(name) {
		return "", common.ErrInvalidFileName
	}

	station := name[:4]
	year := name[4:8]
	month := name[8:10]
	day := name[10:12]

	return year + "/" + month + "/" + day + "/" + station + "/" + name, nil
}
