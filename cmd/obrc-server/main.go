package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/obrc/internal/aggregation"
	corecfg "github.com/aevon-lab/obrc/internal/core/config"
	"github.com/aevon-lab/obrc/internal/core/storage"
	"github.com/aevon-lab/obrc/internal/core/storage/memory"
	"github.com/aevon-lab/obrc/internal/core/storage/postgres"
	"github.com/aevon-lab/obrc/internal/ingestion"
	"github.com/aevon-lab/obrc/internal/migrations"
	"github.com/aevon-lab/obrc/internal/projection"
	"github.com/aevon-lab/obrc/internal/server"
)

func main() {
	configPath := flag.String("config", "obrc.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 1. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)
	slog.Info("Loaded config", "config", cfg)

	param, err := cfg.Engine.Parameter()
	if err != nil {
		slog.Error("Invalid engine configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage (PostgreSQL, or in-memory when disabled)
	var (
		store   storage.RunStore
		adapter *postgres.Adapter
	)
	if cfg.Database.Enabled {
		db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}

		// 2.1. Run Database Migrations
		if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			db.Close()
			os.Exit(1)
		}

		adapter, err = postgres.NewAdapterWithDB(db)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer adapter.Close()
		store = adapter
	} else {
		slog.Info("Database disabled, keeping runs in memory")
		store = memory.NewRunStore()
	}

	// 3. Initialize Aggregation Engine
	engine := aggregation.NewEngine(param)
	slog.Info("Aggregation engine initialized",
		"workers", param.Workers,
		"chunks_per_worker", param.ChunksPerWorker,
		"table", param.Table,
		"key_mode", param.KeyMode,
		"parse_policy", param.ParsePolicy,
	)

	// 4. Initialize Ingestion (dataset upload)
	ingestionSvc := ingestion.NewService(engine, store, cfg.Server.MaxBodySizeMB)

	// 5. Initialize Projection (run queries)
	projectionSvc := projection.NewService(store)

	// 6. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbOf(adapter), cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 7. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func dbOf(adapter *postgres.Adapter) *sql.DB {
	if adapter == nil {
		return nil
	}
	return adapter.DB()
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
