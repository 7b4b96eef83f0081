package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	corecfg "github.com/aevon-lab/obrc/internal/core/config"
	"github.com/aevon-lab/obrc/internal/generator"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	size := flag.Int("size", 0, "Number of records to generate (overrides generator.size)")
	seed := flag.Uint64("seed", 0, "Random seed (overrides generator.seed)")
	stationsPath := flag.String("stations", "", "YAML station list (overrides generator.stations_file)")
	outputPath := flag.String("output", "", "Dataset path to write (overrides input.path)")
	flag.Parse()

	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *size > 0 {
		cfg.Generator.Size = *size
	}
	if *seed != 0 {
		cfg.Generator.Seed = *seed
	}
	if *stationsPath != "" {
		cfg.Generator.StationsFile = *stationsPath
	}
	if *outputPath != "" {
		cfg.Input.Path = *outputPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	if err := generate(cfg); err != nil {
		slog.Error("Generation failed", "error", err)
		os.Exit(1)
	}
}

func generate(cfg *corecfg.Config) error {
	stations, err := generator.LoadStations(cfg.Generator.StationsFile)
	if err != nil {
		return err
	}

	gen, err := generator.New(stations, cfg.Generator.Seed, cfg.Generator.StdDev)
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.Input.Path, err)
	}

	started := time.Now()
	written, err := gen.Generate(f, cfg.Generator.Size)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", cfg.Input.Path, err)
	}

	slog.Info("Generated dataset",
		"path", cfg.Input.Path,
		"records", cfg.Generator.Size,
		"stations", len(stations),
		"bytes", written,
		"seed", cfg.Generator.Seed,
		"elapsed", time.Since(started),
	)
	return nil
}
