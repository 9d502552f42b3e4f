package errcodes

import (
	"fmt"
	"net/http"
	"strings"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
	Details  []string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	te.Details = err.Details
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// Unauthorized returns a 401 error with the given message.
func Unauthorized(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnauthorized,
		Message:  msg,
		Code:     "unauthorized",
	}
}

// Forbidden returns a 403 error with a message indicating the action is
// forbidden.
func Forbidden(action string) error {
	return &Error{
		HTTPCode: http.StatusForbidden,
		Message:  action + " is not allowed.",
		Code:     "forbidden",
	}
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		HTTPCode: http.StatusNotFound,
		Message:  resource + " not found.",
		Code:     "not_found",
	}
}

// Conflict returns a 409 error with the given message.
func Conflict(msg string) error {
	return &Error{
		HTTPCode: http.StatusConflict,
		Message:  msg,
		Code:     "conflict",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		HTTPCode: http.StatusUnsupportedMediaType,
		Message:  "Unsupported Media Type",
		Code:     "unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  fmt.Sprintf("Unknown Parameter %q", param),
		Code:     "unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_error",
	}
}

// ValidationErrors returns a 422 error carrying every violation so that a
// form can display all of them at once. The first message doubles as the
// top-level message.
func ValidationErrors(msgs []string) error {
	if len(msgs) == 0 {
		return ValidationError("Validation failed")
	}
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  strings.Join(msgs, " "),
		Code:     "validation_error",
		Details:  msgs,
	}
}

// InvalidStateTransition returns a 422 error naming the offending state pair.
func InvalidStateTransition(from, to string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  fmt.Sprintf("Can't transition a book from %q to %q.", from, to),
		Code:     "invalid_state_transition",
	}
}

func MalformedPayload() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Malformed Payload",
		Code:     "malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Request body can't be empty.",
		Code:     "empty_request_body",
	}
}
