package server

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	healthCheckTimeout = 2 * time.Second
	readHeaderTimeout  = 10 * time.Second
	shutdownTimeout    = 5 * time.Second

	storeMemory   = "memory"
	storePostgres = "postgres"
)

// Server hosts the run API. Routes are registered on Engine by the
// ingestion and projection services.
type Server struct {
	Engine *gin.Engine
	Addr   string
	db     *sql.DB
}

// New builds the HTTP server. db is the postgres pool behind the run store,
// or nil when runs are kept in memory.
func New(addr string, db *sql.DB, mode string) *Server {
	if mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	s := &Server{
		Engine: r,
		Addr:   addr,
		db:     db,
	}

	r.GET("/health", s.healthHandler)

	return s
}

func (s *Server) runStore() string {
	if s.db == nil {
		return storeMemory
	}
	return storePostgres
}

// healthHandler reports which run store backs the API. Only a postgres
// store can be unhealthy: ingested runs could not be saved or read.
func (s *Server) healthHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"run_store": s.runStore(),
			"database":  "disabled",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		slog.Error("[Server] Health check failed: run store unreachable", "run_store", s.runStore(), "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"run_store": s.runStore(),
			"error":     "run store database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"run_store": s.runStore(),
		"database":  "connected",
	})
}

// Run serves until ctx is cancelled, then drains in-flight ingests for up to
// shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	slog.Info("[Server] Serving run API", "address", s.Addr, "run_store", s.runStore())

	go func() {
		<-ctx.Done()
		slog.Info("[Server] Shutting down run API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("[Server] Forced shutdown with requests in flight", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
