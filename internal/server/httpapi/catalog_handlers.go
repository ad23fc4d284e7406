package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondList is the shared terminal for the catalog dimension queries: an
// empty result set is a 404, matching the data-emptiness contract.
func (s *Server) respondList(c *gin.Context, values []string, err error, emptyMsg string) {
	if err != nil {
		s.logger.Error(c.Request.Context(), "catalog query failed",
			"endpoint", c.FullPath(), "error", err)
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	if len(values) == 0 {
		detail(c, http.StatusNotFound, emptyMsg)
		return
	}
	c.JSON(http.StatusOK, values)
}

// requireQuery fetches a mandatory query parameter, aborting with 400 when
// it is missing. Callers must return immediately on ok == false.
func requireQuery(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		detail(c, http.StatusBadRequest, name+" query parameter is required")
		return "", false
	}
	return v, true
}

func (s *Server) goesProducts(c *gin.Context) {
	values, err := s.catalog.GoesProducts(c.Request.Context())
	s.respondList(c, values, err, "No products found in the catalog")
}

func (s *Server) goesYears(c *gin.Context) {
	product := c.DefaultQuery("product", s.cfg.DefaultGoesProduct)
	values, err := s.catalog.GoesYears(c.Request.Context(), product)
	s.respondList(c, values, err, "Please make sure you entered a valid product")
}

func (s *Server) goesDays(c *gin.Context) {
	year, ok := requireQuery(c, "year")
	if !ok {
		return
	}
	product := c.DefaultQuery("product", s.cfg.DefaultGoesProduct)
	values, err := s.catalog.GoesDays(c.Request.Context(), product, year)
	s.respondList(c, values, err, "Please make sure you entered valid value(s)")
}

func (s *Server) goesHours(c *gin.Context) {
	year, ok := requireQuery(c, "year")
	if !ok {
		return
	}
	day, ok := requireQuery(c, "day")
	if !ok {
		return
	}
	product := c.DefaultQuery("product", s.cfg.DefaultGoesProduct)
	values, err := s.catalog.GoesHours(c.Request.Context(), product, year, day)
	s.respondList(c, values, err, "Please make sure you entered valid value(s)")
}

func (s *Server) nexradYears(c *gin.Context) {
	values, err := s.catalog.NexradYears(c.Request.Context())
	s.respondList(c, values, err, "No years found in the catalog")
}

func (s *Server) nexradMonths(c *gin.Context) {
	year, ok := requireQuery(c, "year")
	if !ok {
		return
	}
	values, err := s.catalog.NexradMonths(c.Request.Context(), year)
	s.respondList(c, values, err, "Please make sure you entered a valid year")
}

func (s *Server) nexradDays(c *gin.Context) {
	year, ok := requireQuery(c, "year")
	if !ok {
		return
	}
	month, ok := requireQuery(c, "month")
	if !ok {
		return
	}
	values, err := s.catalog.NexradDays(c.Request.Context(), year, month)
	s.respondList(c, values, err, "Please make sure you entered valid value(s)")
}

func (s *Server) nexradStations(c *gin.Context) {
	year, ok := requireQuery(c, "year")
	if !ok {
		return
	}
	month, ok := requireQuery(c, "month")
	if !ok {
		return
	}
	day, ok := requireQuery(c, "day")
	if !ok {
		return
	}
	values, err := s.catalog.NexradStations(c.Request.Context(), year, month, day)
	s.respondList(c, values, err, "Please make sure you entered valid value(s)")
}

// stationMapData serves the station reference table in columnar form for
// map rendering. The endpoint is open; the table carries no user data.
func (s *Server) stationMapData(c *gin.Context) {
	stations, err := s.catalog.StationMap(c.Request.Context())
	if err != nil {
		s.logger.Error(c.Request.Context(), "station map query failed", "error", err)
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	if len(stations) == 0 {
		detail(c, http.StatusNotFound, "Unable to fetch mapdata")
		return
	}

	codes := make([]string, 0, len(stations))
	states := make([]string, 0, len(stations))
	counties := make([]string, 0, len(stations))
	latitudes := make([]float64, 0, len(stations))
	longitudes := make([]float64, 0, len(stations))
	elevations := make([]int, 0, len(stations))
	for _, st := range stations {
		codes = append(codes, st.Code)
		states = append(states, st.State)
		counties = append(counties, st.County)
		latitudes = append(latitudes, st.Latitude)
		longitudes = append(longitudes, st.Longitude)
		elevations = append(elevations, st.Elevation)
	}

	c.JSON(http.StatusOK, gin.H{
		"station_code": codes,
		"state":        states,
		"county":       counties,
		"latitude":     latitudes,
		"longitude":    longitudes,
		"elevation":    elevations,
	})
}
