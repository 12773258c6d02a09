package workflow

// Error is the failure type surfaced by every workflow operation. Handlers map
// Code to an HTTP status; Message is safe to show to the caller.
type Error struct {
	Code    string
	Message string
}

const (
	CodeValidation   = "validation"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
)

func (e *Error) Error() string {
	return e.Message
}

func ValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func AuthorizationError(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

func NotFoundError(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func ConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}
