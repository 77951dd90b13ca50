package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	v1 "github.com/dadbot-lab/dadbot/internal/api/v1"
	"github.com/dadbot-lab/dadbot/internal/bot"
	httperr "github.com/dadbot-lab/dadbot/internal/core/errors"
	"github.com/dadbot-lab/dadbot/internal/counter"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthChecker is an interface for components that can report their health status.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Reporter returns the current dadded count.
type Reporter interface {
	Report(ctx context.Context) (counter.Report, error)
}

type Server struct {
	Engine   *gin.Engine
	Addr     string
	health   HealthChecker
	reporter Reporter
}

// New builds the HTTP surface. A nil gatherer leaves /metrics unregistered.
func New(addr, mode string, health HealthChecker, reporter Reporter, gatherer prometheus.Gatherer) *Server {
	if mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	s := &Server{
		Engine:   r,
		Addr:     addr,
		health:   health,
		reporter: reporter,
	}

	r.GET("/health", s.healthHandler)
	r.GET("/v1/count", s.countHandler)
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return s
}

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.health != nil {
		if err := s.health.Ping(ctx); err != nil {
			slog.Error("[Server] Health check failed: database unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
				ErrorType: httperr.HttpDatabaseUnreachable,
				Message:   "database unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// countHandler handles GET /v1/count. Reading the count ticks the epoch
// manager, the same as the chat command does.
func (s *Server) countHandler(c *gin.Context) {
	if s.reporter == nil {
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpCounterUnavailable,
			Message:   "counter is not running",
		})
		return
	}

	report, err := s.reporter.Report(c.Request.Context())
	if err != nil {
		slog.Error("[Server] Failed to read dadded count", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to read dadded count",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, v1.NewCountResponse(
		report.Counter.EpochID,
		report.Counter.ID,
		report.Counter.Count,
		report.HasRolledOver,
		report.Width,
		bot.FormatReport(report),
	))
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("[Server] Starting HTTP server", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("[Server] Stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("[Server] HTTP server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
