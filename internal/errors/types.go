package errors

// wire shape for failures. the client reads detail first and falls
// back to message, so both are populated for anything user-facing.
type ErrorResponse struct {
	Detail  string `json:"detail"`
	Code    string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorInfo struct {
	category  string
	sanitized string
}
