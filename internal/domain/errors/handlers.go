package errors

// Response is the unified error envelope rendered by the HTTP error handler.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries the business error code alongside details.
type ErrorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}
