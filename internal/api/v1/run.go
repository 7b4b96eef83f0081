package v1

import (
	"fmt"
	"time"

	"github.com/aevon-lab/obrc/internal/aggregation"
	"github.com/shopspring/decimal"
)

// Run is one finished aggregation over a dataset.
type Run struct {
	// ID is a server-assigned UUID.
	ID string `json:"id"`

	// Source names the dataset (input path or a client-supplied label).
	Source string `json:"source"`

	CreatedAt time.Time `json:"created_at"`

	// Records is the number of lines folded into the summaries.
	Records int64 `json:"records"`

	// Skipped is the number of malformed lines dropped under the skip policy.
	Skipped int64 `json:"skipped"`

	ElapsedMS int64 `json:"elapsed_ms"`

	// StationCount is set even when Stations is not loaded (run listings).
	StationCount int `json:"station_count"`

	// Stations is ordered by station key bytes.
	Stations []StationSummary `json:"stations,omitempty"`
}

// StationSummary is the finalized min/max/mean of one station.
type StationSummary struct {
	Station string          `json:"station"`
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	Mean    decimal.Decimal `json:"mean"`
	Count   int64           `json:"count"`
}

// NewRun converts an engine result into its wire form.
func NewRun(id, source string, createdAt time.Time, result *aggregation.Result) *Run {
	stations := make([]StationSummary, 0, len(result.Stations))
	for _, s := range result.Stations {
		stations = append(stations, StationSummary{
			Station: s.Station,
			Min:     s.Min,
			Max:     s.Max,
			Mean:    s.Mean,
			Count:   int64(s.Count),
		})
	}
	return &Run{
		ID:           id,
		Source:       source,
		CreatedAt:    createdAt,
		Records:      result.Stats.Records,
		Skipped:      result.Stats.Skipped,
		ElapsedMS:    result.Stats.Elapsed.Milliseconds(),
		StationCount: len(stations),
		Stations:     stations,
	}
}

// Validate checks the invariants a stored run must hold.
func (r *Run) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("created_at is required")
	}
	if r.Records < 0 || r.Skipped < 0 {
		return fmt.Errorf("records and skipped must be >= 0")
	}
	if r.StationCount != len(r.Stations) {
		return fmt.Errorf("station_count %d does not match %d stations", r.StationCount, len(r.Stations))
	}

	var total int64
	for i, s := range r.Stations {
		if s.Station == "" {
			return fmt.Errorf("stations[%d]: station is required", i)
		}
		if i > 0 && r.Stations[i-1].Station >= s.Station {
			return fmt.Errorf("stations[%d]: %q is not sorted after %q", i, s.Station, r.Stations[i-1].Station)
		}
		if s.Count <= 0 {
			return fmt.Errorf("station %q: count must be > 0", s.Station)
		}
		if s.Min.GreaterThan(s.Max) {
			return fmt.Errorf("station %q: min %s > max %s", s.Station, s.Min, s.Max)
		}
		total += s.Count
	}
	if total != r.Records {
		return fmt.Errorf("station counts sum to %d, want %d records", total, r.Records)
	}
	return nil
}
