// Package httpapi exposes the REST surface of the catalog service: identity,
// catalog queries, object listing/copy/fetch and access-log queries, with
// bearer auth and plan-based quota gating on the data endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/dpatil-neu/skycatalog/internal/logging"
	"github.com/dpatil-neu/skycatalog/internal/objstore"
	"github.com/dpatil-neu/skycatalog/internal/server/accesslog"
	catalogstore "github.com/dpatil-neu/skycatalog/internal/server/catalog"
	"github.com/dpatil-neu/skycatalog/internal/server/config"
	"github.com/dpatil-neu/skycatalog/internal/server/metrics"
	"github.com/dpatil-neu/skycatalog/internal/server/quota"
	"github.com/dpatil-neu/skycatalog/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg     *config.Config
	logger  logging.Logger
	users   *users.Service
	catalog catalogstore.Repository
	logs    accesslog.Repository
	gate    *quota.Gate
	store   objstore.Store
	metrics *metrics.Metrics
	clock   clockwork.Clock
	engine  *gin.Engine
}

func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	usersSvc *users.Service,
	catalogRepo catalogstore.Repository,
	logs accesslog.Repository,
	gate *quota.Gate,
	store objstore.Store,
	clock clockwork.Clock,
) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger.With("module", "httpapi"),
		users:   usersSvc,
		catalog: catalogRepo,
		logs:    logs,
		gate:    gate,
		store:   store,
		metrics: metrics.New(),
		clock:   clock,
	}
	s.engine = s.buildEngine()
	return s
}

func (s *Server) buildEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	// Open endpoints: no token required.
	engine.GET("/health", s.health)
	engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	engine.POST("/user/create", s.createUser)
	engine.POST("/login", s.login)
	engine.GET("/catalog/mapdata", s.stationMapData)

	// Authenticated but not quota-gated: account management must keep
	// working when the caller has exhausted their quota, otherwise the
	// upgrade path would be unreachable.
	authed := engine.Group("/", s.requireAuth())
	authed.PATCH("/user/update", s.updatePassword)
	authed.GET("/user/details", s.userDetails)
	authed.POST("/user/upgrade-plan", s.upgradePlan)
	authed.GET("/user/logs", s.userLogs)
	authed.GET("/user/logs/admin", s.adminLogs)

	// Data endpoints: every request is counted against the plan quota and
	// appended to the access log, allowed or denied.
	gated := engine.Group("/", s.requireAuth(), s.gated())

	gated.GET("/catalog/goes18", s.goesProducts)
	gated.GET("/catalog/goes18/prod", s.goesYears)
	gated.GET("/catalog/goes18/prod/year", s.goesDays)
	gated.GET("/catalog/goes18/prod/year/day", s.goesHours)

	gated.GET("/catalog/nexrad", s.nexradYears)
	gated.GET("/catalog/nexrad/year", s.nexradMonths)
	gated.GET("/catalog/nexrad/year/month", s.nexradDays)
	gated.GET("/catalog/nexrad/year/month/day", s.nexradStations)

	gated.GET("/objects/goes18", s.listGoesObjects)
	gated.GET("/objects/nexrad", s.listNexradObjects)
	gated.POST("/objects/goes18/copy", s.copyGoesObject)
	gated.POST("/objects/nexrad/copy", s.copyNexradObject)

	gated.POST("/fetchfile/goes18", s.fetchGoesFile)
	gated.POST("/fetchfile/nexrad", s.fetchNexradFile)

	return engine
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.EndpointAddr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server starting", "addr", s.cfg.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
