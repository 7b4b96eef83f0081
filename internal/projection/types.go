package projection

import (
	v1 "github.com/aevon-lab/obrc/internal/api/v1"
)

// ListRunsQuery holds the query parameters of GET /v1/runs.
type ListRunsQuery struct {
	Limit int `form:"limit"`
}

// ListRunsResponse is the body of GET /v1/runs.
type ListRunsResponse struct {
	Runs []*v1.Run `json:"runs"`
}
