package errors

const (
	HttpInternalError        = "internal_error"
	HttpInvalidBodyError     = "invalid_body"
	HttpPayloadTooLargeError = "payload_too_large"
	HttpMalformedRecordError = "malformed_record"
	HttpInvalidQueryError    = "invalid_query"
	HttpRunNotFoundError     = "run_not_found"
	HttpDuplicateRunError    = "duplicate_run"
)

// ErrorResponse is the error body returned by every HTTP handler.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
