package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aevon-lab/obrc/internal/aggregation"
	v1 "github.com/aevon-lab/obrc/internal/api/v1"
	corecfg "github.com/aevon-lab/obrc/internal/core/config"
	"github.com/aevon-lab/obrc/internal/core/storage/postgres"
	"github.com/aevon-lab/obrc/internal/input"
	"github.com/aevon-lab/obrc/internal/migrations"
	"github.com/aevon-lab/obrc/internal/projection"
	"github.com/google/uuid"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitMismatch = 2
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	inputPath := flag.String("input", "", "Dataset to aggregate (overrides input.path)")
	outputPath := flag.String("output", "", "Write output here instead of stdout (overrides output.path)")
	expectPath := flag.String("expect", "", "Compare output with this file (overrides output.expect)")
	flag.Parse()

	// 0. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(exitFailure)
	}
	if *inputPath != "" {
		cfg.Input.Path = *inputPath
	}
	if flag.NArg() > 0 {
		cfg.Input.Path = flag.Arg(0)
	}
	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}
	if *expectPath != "" {
		cfg.Output.Expect = *expectPath
	}

	// 1. Initialize Logger (stdout carries the results)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg))
}

func run(ctx context.Context, cfg *corecfg.Config) int {
	param, err := cfg.Engine.Parameter()
	if err != nil {
		slog.Error("Invalid engine configuration", "error", err)
		return exitFailure
	}

	// 2. Materialize Input
	buf, err := input.Open(cfg.Input.Path, cfg.Input.Mmap)
	if err != nil {
		slog.Error("Failed to open input", "path", cfg.Input.Path, "error", err)
		return exitFailure
	}
	defer buf.Close()

	// 3. Aggregate
	engine := aggregation.NewEngine(param)
	result, err := engine.Run(ctx, buf.Bytes())
	if err != nil {
		slog.Error("Aggregation failed", "input", cfg.Input.Path, "error", err)
		return exitFailure
	}

	slog.Info("Aggregated dataset",
		"input", cfg.Input.Path,
		"bytes", len(buf.Bytes()),
		"records", result.Stats.Records,
		"skipped", result.Stats.Skipped,
		"stations", result.Stats.Stations,
		"partitions", result.Stats.Partitions,
		"elapsed", result.Stats.Elapsed,
	)

	// 4. Emit Output
	out := projection.Render(result.Stations)
	if err := writeOutput(cfg.Output.Path, out); err != nil {
		slog.Error("Failed to write output", "path", cfg.Output.Path, "error", err)
		return exitFailure
	}

	// 5. Persist Run (optional)
	if cfg.Database.Enabled {
		if err := persistRun(ctx, cfg, result); err != nil {
			slog.Error("Failed to persist run", "error", err)
			return exitFailure
		}
	}

	// 6. Compare With Expected Output (optional)
	if cfg.Output.Expect != "" {
		expected, err := os.ReadFile(cfg.Output.Expect)
		if err != nil {
			slog.Error("Failed to read expected output", "path", cfg.Output.Expect, "error", err)
			return exitFailure
		}
		if d, ok := projection.Compare(string(expected), out); !ok {
			slog.Error("Output does not match expected", "expect", cfg.Output.Expect)
			fmt.Fprintln(os.Stderr, d)
			return exitMismatch
		}
		slog.Info("Output matches expected", "expect", cfg.Output.Expect)
	}

	return exitOK
}

func writeOutput(path, out string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, out)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeAndClose(f, out)
}

// writeAndClose reports the Close error too, since a failed close can leave
// the output file truncated.
func writeAndClose(wc io.WriteCloser, out string) error {
	_, err := io.WriteString(wc, out)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	return err
}

func persistRun(ctx context.Context, cfg *corecfg.Config, result *aggregation.Result) error {
	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return err
	}
	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	dbAdapter, err := postgres.NewAdapterWithDB(db)
	if err != nil {
		return err
	}
	defer dbAdapter.Close()

	run := v1.NewRun(uuid.NewString(), cfg.Input.Path, time.Now().UTC(), result)
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}
	if err := dbAdapter.SaveRun(ctx, run); err != nil {
		return err
	}

	slog.Info("Persisted run", "run_id", run.ID, "stations", run.StationCount)
	return nil
}
