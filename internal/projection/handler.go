package projection

import (
	"bytes"
	"errors"
	"net/http"

	httperr "github.com/aevon-lab/obrc/internal/core/errors"
	"github.com/aevon-lab/obrc/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all run query routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/runs", s.HandleListRuns)
	r.GET("/v1/runs/:run_id", s.HandleGetRun)
	r.GET("/v1/runs/:run_id/output", s.HandleGetRunOutput)
}

// HandleListRuns handles GET /v1/runs?limit=N
func (s *Service) HandleListRuns(c *gin.Context) {
	var query ListRunsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.ListRuns(c.Request.Context(), query)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleGetRun handles GET /v1/runs/:run_id
func (s *Service) HandleGetRun(c *gin.Context) {
	run, err := s.GetRun(c.Request.Context(), c.Param("run_id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// HandleGetRunOutput handles GET /v1/runs/:run_id/output and returns the
// run rendered as key=min/max/mean lines.
func (s *Service) HandleGetRunOutput(c *gin.Context) {
	run, err := s.GetRun(c.Request.Context(), c.Param("run_id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := WriteRun(&buf, run); err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (s *Service) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid run query",
			Details:   err.Error(),
		})
	case errors.Is(err, storage.ErrRunNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpRunNotFoundError,
			Message:   "Run not found",
			Details:   c.Param("run_id"),
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to query runs",
			Details:   err.Error(),
		})
	}
}
