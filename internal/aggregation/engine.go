package aggregation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	coreagg "github.com/aevon-lab/obrc/internal/core/aggregation"
	"github.com/aevon-lab/obrc/internal/core/partition"
	"github.com/aevon-lab/obrc/internal/core/record"
	"golang.org/x/sync/errgroup"
)

const (
	defaultChunksPerWorker = 1
	defaultSizeHint        = 1024

	// cancelCheckInterval is how many lines a worker folds between context checks.
	cancelCheckInterval = 1 << 16

	maxQuotedLine = 64
)

// ErrMergeMismatch is returned when two partials cannot be merged.
var ErrMergeMismatch = errors.New("partial results cannot be merged")

// ErrNoPartials is returned when a strategy produced a partition without a table.
var ErrNoPartials = errors.New("partition produced no partial result")

// EngineParameter controls parallelism and the aggregation table of a run.
type EngineParameter struct {
	Workers         int
	ChunksPerWorker int
	Table           coreagg.TableKind
	KeyMode         coreagg.KeyMode
	ParsePolicy     ParsePolicy
	SizeHint        int
}

// DefaultEngineParameter returns one chunk per available CPU, swiss tables,
// borrowed keys and the skip policy.
func DefaultEngineParameter() EngineParameter {
	return EngineParameter{
		Workers:         runtime.GOMAXPROCS(0),
		ChunksPerWorker: defaultChunksPerWorker,
		Table:           coreagg.TableSwiss,
		KeyMode:         coreagg.KeyBorrowed,
		ParsePolicy:     PolicySkip,
		SizeHint:        defaultSizeHint,
	}
}

func (p EngineParameter) normalized() EngineParameter {
	n := p
	if n.Workers <= 0 {
		n.Workers = runtime.GOMAXPROCS(0)
	}
	if n.ChunksPerWorker <= 0 {
		n.ChunksPerWorker = defaultChunksPerWorker
	}
	if n.Table == "" {
		n.Table = coreagg.TableSwiss
	}
	if n.SizeHint <= 0 {
		n.SizeHint = defaultSizeHint
	}
	return n
}

// Partial is the fold of one partition. It is owned by exactly one goroutine
// until it is handed to Merge.
type Partial struct {
	Table   coreagg.Table
	Records int64
	Skipped int64
}

// Strategy splits the work of a run. Scheduling lives in Engine, so a strategy
// only decides chunk granularity, per-chunk folding and pairwise merging.
type Strategy interface {
	Partition(input []byte) []partition.Range
	Process(ctx context.Context, input []byte, r partition.Range) (Partial, error)
	// Merge folds src into dst and returns the combined partial. src is consumed.
	Merge(dst, src Partial) (Partial, error)
}

// LineError reports a malformed line under the strict parse policy.
type LineError struct {
	Offset int
	Line   string
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line at byte %d %q: %v", e.Offset, e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ForkJoin is the default Strategy: line-aligned chunks, one table per chunk.
type ForkJoin struct {
	param EngineParameter
}

// NewForkJoin creates the default strategy.
func NewForkJoin(param EngineParameter) *ForkJoin {
	return &ForkJoin{param: param.normalized()}
}

// Partition splits input into Workers*ChunksPerWorker ranges.
func (f *ForkJoin) Partition(input []byte) []partition.Range {
	return partition.Split(input, f.param.Workers*f.param.ChunksPerWorker)
}

// Process parses and folds every line of r into a fresh table.
func (f *ForkJoin) Process(ctx context.Context, input []byte, r partition.Range) (Partial, error) {
	if err := ctx.Err(); err != nil {
		return Partial{}, err
	}
	table, err := coreagg.NewTable(f.param.Table, f.param.KeyMode, f.param.SizeHint)
	if err != nil {
		return Partial{}, err
	}
	p := Partial{Table: table}

	chunk := input[r.Start:r.End]
	lines := 0
	for pos := 0; pos < len(chunk); {
		lines++
		if lines%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Partial{}, err
			}
		}

		offset := pos
		line := chunk[pos:]
		if nl := bytes.IndexByte(line, '\n'); nl >= 0 {
			line = line[:nl]
			pos += nl + 1
		} else {
			pos = len(chunk)
		}
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		if len(line) == 0 {
			continue
		}

		rec, err := record.ParseLine(line)
		if err != nil {
			if f.param.ParsePolicy == PolicyStrict {
				return Partial{}, &LineError{Offset: r.Start + offset, Line: quoteLine(line), Err: err}
			}
			p.Skipped++
			continue
		}
		table.Upsert(rec.Key, rec.Value)
		p.Records++
	}
	return p, nil
}

// Merge folds src into dst. The empty partial is the identity.
func (f *ForkJoin) Merge(dst, src Partial) (Partial, error) {
	if src.Table == nil {
		return dst, nil
	}
	if dst.Table == nil {
		return src, nil
	}
	if dst.Table.KeyMode() != src.Table.KeyMode() {
		return Partial{}, fmt.Errorf("%w: key modes %s and %s", ErrMergeMismatch, dst.Table.KeyMode(), src.Table.KeyMode())
	}
	dst.Table.MergeFrom(src.Table)
	dst.Records += src.Records
	dst.Skipped += src.Skipped
	return dst, nil
}

func quoteLine(line []byte) string {
	if len(line) > maxQuotedLine {
		return string(line[:maxQuotedLine]) + "..."
	}
	return string(line)
}

// Stats describes one run.
type Stats struct {
	Records    int64
	Skipped    int64
	Partitions int
	Stations   int
	Elapsed    time.Duration
}

// Result is the finalized output of a run, sorted by station.
type Result struct {
	Stations []coreagg.StationSummary
	Stats    Stats
}

// Engine runs a Strategy as a fork-join: parallel fold of every partition,
// then a parallel pairwise reduction tree, then finalization.
type Engine struct {
	strategy Strategy
	workers  int
}

// NewEngine creates an engine with the ForkJoin strategy.
func NewEngine(param EngineParameter) *Engine {
	param = param.normalized()
	return &Engine{
		strategy: NewForkJoin(param),
		workers:  param.Workers,
	}
}

// NewEngineWithStrategy creates an engine running a custom strategy on at most workers goroutines.
func NewEngineWithStrategy(strategy Strategy, workers int) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{strategy: strategy, workers: workers}
}

// Run aggregates input. input must stay unchanged until Run returns; the result
// does not reference it. On any error no result is returned.
func (e *Engine) Run(ctx context.Context, input []byte) (*Result, error) {
	started := time.Now()

	ranges := e.strategy.Partition(input)
	slog.Debug("[Engine] Partitioned input",
		"bytes", len(input),
		"partitions", len(ranges),
		"workers", e.workers,
	)

	partials, err := e.fold(ctx, input, ranges)
	if err != nil {
		return nil, fmt.Errorf("fold partitions: %w", err)
	}

	merged, err := e.reduce(ctx, partials)
	if err != nil {
		return nil, fmt.Errorf("merge partitions: %w", err)
	}

	var stations []coreagg.StationSummary
	if merged.Table != nil {
		stations, err = coreagg.Finalize(merged.Table)
		if err != nil {
			return nil, fmt.Errorf("finalize: %w", err)
		}
	} else {
		stations = []coreagg.StationSummary{}
	}

	result := &Result{
		Stations: stations,
		Stats: Stats{
			Records:    merged.Records,
			Skipped:    merged.Skipped,
			Partitions: len(ranges),
			Stations:   len(stations),
			Elapsed:    time.Since(started),
		},
	}

	slog.Info("[Engine] Run complete",
		"records", result.Stats.Records,
		"skipped", result.Stats.Skipped,
		"partitions", result.Stats.Partitions,
		"stations", result.Stats.Stations,
		"elapsed", result.Stats.Elapsed,
	)
	return result, nil
}

// fold processes every range on the worker pool. Each goroutine writes only its own slot.
func (e *Engine) fold(ctx context.Context, input []byte, ranges []partition.Range) ([]Partial, error) {
	partials := make([]Partial, len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, r := range ranges {
		g.Go(func() error {
			p, err := e.strategy.Process(gctx, input, r)
			if err != nil {
				return fmt.Errorf("partition %d [%d,%d): %w", i, r.Start, r.End, err)
			}
			if p.Table == nil {
				return fmt.Errorf("partition %d: %w", i, ErrNoPartials)
			}
			partials[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return partials, nil
}

// reduce merges partials pairwise, level by level, until one remains.
// Zero partials reduce to the empty partial.
func (e *Engine) reduce(ctx context.Context, partials []Partial) (Partial, error) {
	for len(partials) > 1 {
		next := make([]Partial, (len(partials)+1)/2)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.workers)
		for i := 0; i < len(partials)/2; i++ {
			dst, src := partials[2*i], partials[2*i+1]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				merged, err := e.strategy.Merge(dst, src)
				if err != nil {
					return err
				}
				next[i] = merged
				return nil
			})
		}
		if len(partials)%2 == 1 {
			next[len(next)-1] = partials[len(partials)-1]
		}
		if err := g.Wait(); err != nil {
			return Partial{}, err
		}
		partials = next
	}

	if len(partials) == 0 {
		return Partial{}, nil
	}
	return partials[0], nil
}
