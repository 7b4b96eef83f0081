package storage

import (
	"context"
	"errors"

	v1 "github.com/aevon-lab/obrc/internal/api/v1"
)

var (
	// ErrDuplicate is returned when a run with the same id already exists.
	ErrDuplicate = errors.New("run already exists")

	// ErrRunNotFound is returned when no run has the requested id.
	ErrRunNotFound = errors.New("run not found")
)

// RunStore persists finished aggregation runs and their station summaries.
type RunStore interface {
	// SaveRun stores the run header and every station summary atomically.
	SaveRun(ctx context.Context, run *v1.Run) error

	// GetRun loads one run with its stations in station key order.
	GetRun(ctx context.Context, id string) (*v1.Run, error)

	// ListRuns returns run headers newest first, without stations.
	ListRuns(ctx context.Context, limit int) ([]*v1.Run, error)
}
