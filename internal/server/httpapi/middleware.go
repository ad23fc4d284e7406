package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dpatil-neu/skycatalog/internal/common"
	"github.com/dpatil-neu/skycatalog/internal/server/accesslog"
	"github.com/dpatil-neu/skycatalog/internal/server/auth"
)

// usernameKey is the gin context key carrying the authenticated caller.
const usernameKey = "username"

// detail writes the uniform error payload and stops the handler chain.
func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

// requireAuth resolves the bearer token to a username. Expired tokens and
// malformed tokens both yield 401 but with distinguishable messages.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			detail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		username, err := auth.GetUsernameFromToken(token, []byte(s.cfg.SecretKey))
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "Token expired"
			}
			detail(c, http.StatusUnauthorized, msg)
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

// gated enforces the plan quota and appends one access-log entry per
// request, allowed or denied. The entry is written after the handler so it
// records the terminal status; the denial entry is what makes the quota
// count self-referential.
func (s *Server) gated() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(usernameKey)
		endpoint := c.FullPath()
		start := s.clock.Now()

		decision, err := s.gate.Check(c.Request.Context(), username)
		if err != nil {
			detail(c, http.StatusInternalServerError, "Internal error")
			s.record(c.Request.Context(), username, endpoint, http.StatusInternalServerError, start)
			return
		}

		if !decision.Allowed {
			s.metrics.QuotaDenials.WithLabelValues(string(decision.Plan)).Inc()
			detail(c, http.StatusTooManyRequests,
				"Hourly request quota exceeded: upgrade your plan or retry later")
			s.record(c.Request.Context(), username, endpoint, http.StatusTooManyRequests, start)
			return
		}

		c.Next()
		s.record(c.Request.Context(), username, endpoint, c.Writer.Status(), start)
	}
}

func (s *Server) record(ctx context.Context, username, endpoint string, status int, start time.Time) {
	entry := &accesslog.Entry{
		Timestamp: s.clock.Now(),
		Username:  username,
		Endpoint:  endpoint,
		Status:    status,
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		s.logger.Error(ctx, "access log append failed",
			"username", username, "endpoint", endpoint, "error", err)
	}
	s.metrics.ObserveRequest(endpoint, status, s.clock.Since(start))
}
