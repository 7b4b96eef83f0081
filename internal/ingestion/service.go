package ingestion

import (
	"time"

	"github.com/aevon-lab/obrc/internal/aggregation"
	"github.com/aevon-lab/obrc/internal/core/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Service struct {
	engine           *aggregation.Engine
	store            storage.RunStore
	maxBodySizeBytes int
	nowFn            func() time.Time
	newID            func() string
}

func NewService(engine *aggregation.Engine, repo storage.RunStore, maxBodySizeMB int) *Service {
	if engine == nil {
		panic("ingestion: engine must not be nil")
	}
	if repo == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		engine:           engine,
		store:            repo,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		newID: uuid.NewString,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/runs", s.IngestHandler)
}
