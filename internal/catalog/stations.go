package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/dpatil-neu/skycatalog/internal/common"
)

// Station is one row of the static NEXRAD station reference feed.
type Station struct {
	ID        int64
	Code      string
	State     string
	County    string
	Latitude  float64
	Longitude float64
	Elevation int
}

const (
	// stationMarker ends every radar row of the fixed-format feed.
	stationMarker = "NEXRAD"
	// countryMarker restricts the reference set to domestic stations.
	countryMarker = "UNITED STATES"
)

var (
	stateRe   = regexp.MustCompile(`^[A-Z][A-Z]\b`)
	decimalRe = regexp.MustCompile(`^-?[0-9]\d(\.\d+)?$`)
)

// FetchStationFeed downloads the fixed-format station listing and returns its
// lines. Failures are classified by cause so the caller can report why the
// build aborted: common.ErrFeedTimeout, ErrFeedConnection or ErrFeedProtocol.
// There is no retry; the feed is a hard dependency of the build.
func FetchStationFeed(ctx context.Context, client *http.Client, feedURL string) ([]string, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFeedConnection, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", classifyFeedError(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrFeedProtocol, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", classifyFeedError(err), err)
	}

	return strings.Split(string(body), "\n"), nil
}

func classifyFeedError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return common.ErrFeedTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return common.ErrFeedTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return common.ErrFeedConnection
	}
	return common.ErrFeedConnection
}

// ParseStations extracts the station rows from the raw feed lines. Only lines
// ending in the NEXRAD marker and mentioning the country marker are
// considered; a retained line missing any expected sub-field (code, state,
// coordinate triple) is dropped whole rather than producing a ragged row.
func ParseStations(lines []string) []Station {

	var stations []Station

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) == 0 || strings.ToUpper(tokens[len(tokens)-1]) != stationMarker {
			continue
		}
		if !strings.Contains(line, countryMarker) {
			continue
		}

		station, ok := parseStationLine(line)
		if !ok {
			continue
		}
		station.ID = int64(len(stations) + 1)
		stations = append(stations, station)
	}

	return stations
}

func parseStationLine(line string) (Station, bool) {

	var st Station

	// Station code: second single-space token of the first column group.
	groups := splitColumnGroups(line)
	if len(groups) == 0 {
		return st, false
	}
	first := strings.Fields(groups[0])
	if len(first) < 2 {
		return st, false
	}
	st.Code = first[1]

	// State + county share one fixed-width column group, e.g. "AL HOUSTON".
	found := false
	for _, g := range groups {
		if stateRe.MatchString(g) {
			st.State = g[:2]
			st.County = strings.TrimSpace(g[2:])
			found = true
			break
		}
	}
	if !found {
		return st, false
	}

	// Coordinates: first signed-decimal token starts the lat/lon/elev triple.
	tokens := strings.Fields(line)
	for i, tok := range tokens {
		if !decimalRe.MatchString(tok) {
			continue
		}
		if i+2 >= len(tokens) {
			return st, false
		}
		lat, err1 := strconv.ParseFloat(tokens[i], 64)
		lon, err2 := strconv.ParseFloat(tokens[i+1], 64)
		elev, err3 := strconv.Atoi(tokens[i+2])
		if err1 != nil || err2 != nil || err3 != nil {
			return st, false
		}
		st.Latitude = lat
		st.Longitude = lon
		st.Elevation = elev
		return st, true
	}

	return st, false
}

// splitColumnGroups splits a fixed-width feed line on runs of two or more
// spaces, the way its columns are visually separated.
func splitColumnGroups(line string) []string {
	parts := strings.Split(line, "  ")
	groups := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			groups = append(groups, p)
		}
	}
	return groups
}
