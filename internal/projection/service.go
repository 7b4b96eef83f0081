package projection

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/aevon-lab/obrc/internal/api/v1"
	"github.com/aevon-lab/obrc/internal/core/storage"
)

const (
	defaultListLimit = 20
	maxListLimit     = 500
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid run query")

// Service implements the read side of stored runs.
type Service struct {
	store storage.RunStore
}

// NewService creates a new projection service.
func NewService(store storage.RunStore) *Service {
	return &Service{store: store}
}

// GetRun returns one run with all station summaries.
func (s *Service) GetRun(ctx context.Context, id string) (*v1.Run, error) {
	if id == "" {
		return nil, invalidQueryf("run_id is required")
	}
	return s.store.GetRun(ctx, id)
}

// ListRuns returns recent run headers, newest first.
func (s *Service) ListRuns(ctx context.Context, q ListRunsQuery) (*ListRunsResponse, error) {
	limit := q.Limit
	switch {
	case limit == 0:
		limit = defaultListLimit
	case limit < 0 || limit > maxListLimit:
		return nil, invalidQueryf("limit must be between 1 and %d", maxListLimit)
	}

	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	if runs == nil {
		runs = []*v1.Run{}
	}
	return &ListRunsResponse{Runs: runs}, nil
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}

