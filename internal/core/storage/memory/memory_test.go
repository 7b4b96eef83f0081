package memory

import (
	"context"
	"testing"
	"time"

	v1 "github.com/aevon-lab/obrc/internal/api/v1"
	"github.com/aevon-lab/obrc/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newRun(id string, createdAt time.Time) *v1.Run {
	return &v1.Run{
		ID:           id,
		Source:       "test",
		CreatedAt:    createdAt,
		Records:      1,
		StationCount: 1,
		Stations: []v1.StationSummary{{
			Station: "Oslo",
			Min:     decimal.RequireFromString("-1.5"),
			Max:     decimal.RequireFromString("-1.5"),
			Mean:    decimal.RequireFromString("-1.5"),
			Count:   1,
		}},
	}
}

func TestRunStore_SaveAndGet(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	run := newRun("run-1", time.Now().UTC())

	require.NoError(t, store.SaveRun(ctx, run))
	require.ErrorIs(t, store.SaveRun(ctx, run), storage.ErrDuplicate)

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.Equal(t, run, got)

	// Returned runs do not alias the stored copy.
	got.Stations[0].Station = "Bergen"
	again, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.Equal(t, "Oslo", again.Stations[0].Station)

	_, err = store.GetRun(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrRunNotFound)
}

func TestRunStore_ListRuns(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveRun(ctx, newRun(id, base.Add(time.Duration(i)*time.Minute))))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "c", runs[0].ID)
	require.Equal(t, "b", runs[1].ID)
	require.Nil(t, runs[0].Stations)
	require.Equal(t, 1, runs[0].StationCount)

	all, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
}
