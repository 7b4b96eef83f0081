package v1

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aevon-lab/obrc/internal/aggregation"
	coreagg "github.com/aevon-lab/obrc/internal/core/aggregation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func summary(station, min, max, mean string, count uint64) coreagg.StationSummary {
	return coreagg.StationSummary{
		Station: station,
		Summary: coreagg.Summary{
			Min:   decimal.RequireFromString(min),
			Max:   decimal.RequireFromString(max),
			Mean:  decimal.RequireFromString(mean),
			Count: count,
		},
	}
}

func validRun() *Run {
	result := &aggregation.Result{
		Stations: []coreagg.StationSummary{
			summary("A", "1.0", "3.0", "2.0", 2),
			summary("B", "2.0", "2.0", "2.0", 1),
		},
		Stats: aggregation.Stats{Records: 3, Skipped: 1, Elapsed: 1500 * time.Millisecond},
	}
	return NewRun("run-1", "measurements.txt", time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC), result)
}

func TestNewRun(t *testing.T) {
	run := validRun()

	require.Equal(t, int64(3), run.Records)
	require.Equal(t, int64(1), run.Skipped)
	require.Equal(t, int64(1500), run.ElapsedMS)
	require.Equal(t, 2, run.StationCount)
	require.Equal(t, "A", run.Stations[0].Station)
	require.Equal(t, int64(2), run.Stations[0].Count)
	require.NoError(t, run.Validate())
}

func TestRun_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Run)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Run) {}},
		{name: "missing id", mutate: func(r *Run) { r.ID = "" }, wantErr: true},
		{name: "missing created_at", mutate: func(r *Run) { r.CreatedAt = time.Time{} }, wantErr: true},
		{name: "negative skipped", mutate: func(r *Run) { r.Skipped = -1 }, wantErr: true},
		{name: "station count mismatch", mutate: func(r *Run) { r.StationCount = 5 }, wantErr: true},
		{name: "unsorted stations", mutate: func(r *Run) { r.Stations[0], r.Stations[1] = r.Stations[1], r.Stations[0] }, wantErr: true},
		{name: "duplicate station", mutate: func(r *Run) { r.Stations[1].Station = "A" }, wantErr: true},
		{name: "empty station", mutate: func(r *Run) { r.Stations[0].Station = "" }, wantErr: true},
		{name: "min above max", mutate: func(r *Run) { r.Stations[0].Min = decimal.NewFromInt(9) }, wantErr: true},
		{name: "counts do not add up", mutate: func(r *Run) { r.Records = 10 }, wantErr: true},
		{name: "empty run", mutate: func(r *Run) { r.Stations = nil; r.StationCount = 0; r.Records = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			run := validRun()
			tc.mutate(run)
			err := run.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRun_JSON(t *testing.T) {
	body, err := json.Marshal(validRun())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, "run-1", decoded["id"])
	require.Equal(t, float64(2), decoded["station_count"])

	stations := decoded["stations"].([]interface{})
	first := stations[0].(map[string]interface{})
	require.Equal(t, "A", first["station"])
	require.Equal(t, "2", first["mean"])
}
