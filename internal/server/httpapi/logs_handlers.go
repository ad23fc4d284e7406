package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dpatil-neu/skycatalog/internal/common"
	"github.com/dpatil-neu/skycatalog/internal/server/accesslog"
	"github.com/dpatil-neu/skycatalog/internal/server/quota"
	"github.com/dpatil-neu/skycatalog/internal/server/users"
)

type logEntryResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Endpoint  string    `json:"endpoint"`
	Status    int       `json:"status"`
}

func toLogResponses(entries []accesslog.Entry) []logEntryResponse {
	out := make([]logEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, logEntryResponse{
			Timestamp: e.Timestamp,
			Username:  e.Username,
			Endpoint:  e.Endpoint,
			Status:    e.Status,
		})
	}
	return out
}

// userLogs returns the caller's own access-log entries, oldest first.
// ?latest=true narrows the range to the trailing quota window, which is what
// the dashboard uses to show "requests left this hour".
func (s *Server) userLogs(c *gin.Context) {
	username := c.GetString(usernameKey)

	var since time.Time
	if c.Query("latest") == "true" {
		since = s.clock.Now().Add(-quota.Window)
	}

	entries, err := s.logs.ListByUser(c.Request.Context(), username, since)
	if err != nil {
		s.logger.Error(c.Request.Context(), "access log query failed",
			"username", username, "error", err)
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	if len(entries) == 0 {
		detail(c, http.StatusNotFound, "No logs found")
		return
	}

	c.JSON(http.StatusOK, toLogResponses(entries))
}

// adminLogs returns every user's entries. Admin plan only.
func (s *Server) adminLogs(c *gin.Context) {
	username := c.GetString(usernameKey)

	user, err := s.users.Details(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			detail(c, http.StatusNotFound, "User not found")
			return
		}
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	if user.Plan != users.PlanAdmin {
		detail(c, http.StatusForbidden, "Access denied: admin only")
		return
	}

	var since time.Time
	if c.Query("latest") == "true" {
		since = s.clock.Now().Add(-quota.Window)
	}

	entries, err := s.logs.ListAll(c.Request.Context(), since)
	if err != nil {
		s.logger.Error(c.Request.Context(), "access log query failed", "error", err)
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	if len(entries) == 0 {
		detail(c, http.StatusNotFound, "No logs found")
		return
	}

	c.JSON(http.StatusOK, toLogResponses(entries))
}
