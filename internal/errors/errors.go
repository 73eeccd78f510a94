package errors

import "net/http"

// ErrorWithStatusCode is the error type every service operation returns for
// expected failures. Handlers translate it 1:1 into an HTTP status plus the
// JSON error envelope. Errors of any other type are treated as internal and
// reported as 500 with a generic message.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	// Login is set on "already logged in" conflicts so the client can
	// resynchronize its local session state.
	Login string
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func New(message string, statusCode int) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: statusCode}
}

// StatusCode extracts the HTTP status carried by err, defaulting to 500.
func StatusCode(err error) int {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
