package ingestion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aevon-lab/obrc/internal/aggregation"
	v1 "github.com/aevon-lab/obrc/internal/api/v1"
	httperr "github.com/aevon-lab/obrc/internal/core/errors"
	"github.com/aevon-lab/obrc/internal/core/storage"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed   = "Failed to read request body"
	msgEmptyBody        = "Request body must contain at least one line"
	msgNoRecords        = "Dataset contains no valid records"
	msgMalformedRecord  = "Dataset contains a malformed record"
	msgAggregateFailed  = "Failed to aggregate dataset"
	msgPersistFailed    = "Failed to persist run"
	msgDuplicateRun     = "Run already exists"
	msgRunInconsistent  = "Aggregation produced an inconsistent run"
	defaultSourceLabel  = "http"
	maxSourceLabelBytes = 256
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestHandler handles POST /v1/runs?source=label. The body is the raw
// dataset, one "key;value" record per line.
func (s *Service) IngestHandler(c *gin.Context) {
	body, ierr := s.readDataset(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	source := sourceLabel(c.DefaultQuery("source", defaultSourceLabel))

	result, ierr := s.aggregate(c.Request.Context(), body)
	if ierr != nil {
		writeError(c, ierr)
		return
	}
	if result.Stats.Records == 0 {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidBodyError,
			message:    msgNoRecords,
			details: map[string]interface{}{
				"skipped": result.Stats.Skipped,
			},
		})
		return
	}

	run := v1.NewRun(s.newID(), source, s.nowFn(), result)
	if err := run.Validate(); err != nil {
		slog.Error("Aggregated run failed validation", "error", err, "run_id", run.ID)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgRunInconsistent,
			details:    err.Error(),
		})
		return
	}

	slog.Info("Aggregated dataset",
		"run_id", run.ID,
		"source", run.Source,
		"payload_size", len(body),
		"records", run.Records,
		"skipped", run.Skipped,
		"stations", run.StationCount,
		"elapsed_ms", run.ElapsedMS)

	if ierr := s.persistRun(c.Request.Context(), run); ierr != nil {
		writeError(c, ierr)
		return
	}

	c.Header("Location", "/v1/runs/"+run.ID)
	c.JSON(http.StatusCreated, run)
}

// sourceLabel makes the label valid UTF-8 and caps it at maxSourceLabelBytes
// without splitting a rune.
func sourceLabel(raw string) string {
	label := strings.ToValidUTF8(raw, "\uFFFD")
	if len(label) <= maxSourceLabelBytes {
		return label
	}
	n := maxSourceLabelBytes
	for n > 0 && !utf8.RuneStart(label[n]) {
		n--
	}
	return label[:n]
}

// readDataset reads the raw request body, enforcing the configured size limit.
func (s *Service) readDataset(c *gin.Context) ([]byte, *ingestionError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	body, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(body)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(body), "max", maxBytes)
		return nil, &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	if len(body) == 0 {
		return nil, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidBodyError,
			message:    msgEmptyBody,
		}
	}

	return body, nil
}

// aggregate runs the engine over the dataset and maps engine failures to HTTP errors.
func (s *Service) aggregate(ctx context.Context, body []byte) (*aggregation.Result, *ingestionError) {
	result, err := s.engine.Run(ctx, body)
	if err == nil {
		return result, nil
	}

	var lineErr *aggregation.LineError
	if errors.As(err, &lineErr) {
		slog.Warn("Rejected dataset with malformed record", "offset", lineErr.Offset, "error", lineErr.Err)
		return nil, &ingestionError{
			statusCode: http.StatusUnprocessableEntity,
			errorType:  httperr.HttpMalformedRecordError,
			message:    msgMalformedRecord,
			details: map[string]interface{}{
				"offset": lineErr.Offset,
				"line":   lineErr.Line,
				"reason": lineErr.Err.Error(),
			},
		}
	}

	slog.Error("Aggregation failed", "error", err)
	return nil, &ingestionError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    msgAggregateFailed,
	}
}

// persistRun saves the run to the backing store.
func (s *Service) persistRun(ctx context.Context, run *v1.Run) *ingestionError {
	if err := s.store.SaveRun(ctx, run); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			slog.Info("Duplicate run rejected", "run_id", run.ID)
			return &ingestionError{
				statusCode: http.StatusConflict,
				errorType:  httperr.HttpDuplicateRunError,
				message:    msgDuplicateRun,
			}
		}

		slog.Error("Failed to persist run", "error", err, "run_id", run.ID)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}

	return nil
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
