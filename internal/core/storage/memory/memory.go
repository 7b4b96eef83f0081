package memory

import (
	"context"
	"sort"
	"sync"

	v1 "github.com/aevon-lab/obrc/internal/api/v1"
	"github.com/aevon-lab/obrc/internal/core/storage"
)

// RunStore is an in-process storage.RunStore used when no database is configured.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]*v1.Run
}

var _ storage.RunStore = (*RunStore)(nil)

func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[string]*v1.Run)}
}

func (s *RunStore) SaveRun(_ context.Context, run *v1.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; exists {
		return storage.ErrDuplicate
	}
	s.runs[run.ID] = cloneRun(run, true)
	return nil
}

func (s *RunStore) GetRun(_ context.Context, id string) (*v1.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, storage.ErrRunNotFound
	}
	return cloneRun(run, true), nil
}

func (s *RunStore) ListRuns(_ context.Context, limit int) ([]*v1.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*v1.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, cloneRun(run, false))
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func cloneRun(run *v1.Run, withStations bool) *v1.Run {
	cp := *run
	cp.Stations = nil
	if withStations && len(run.Stations) > 0 {
		cp.Stations = append([]v1.StationSummary(nil), run.Stations...)
	}
	return &cp
}
