package errors

const (
	HttpInternalError       = "internal_error"
	HttpDatabaseUnreachable = "database_unreachable"
	HttpCounterUnavailable  = "counter_unavailable"
)

// ErrorResponse is the error body returned by the HTTP API.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
