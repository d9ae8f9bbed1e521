package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindConflict
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Common codes shared by every service.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidJSON   = "INVALID_JSON"
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeMethod        = "METHOD_NOT_ALLOWED"
	CodeInternal      = "INTERNAL_ERROR"
)

// Error is a coded application error. Status optionally carries the HTTP
// status an upstream answered with; it does not drive the local mapping.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Invalid(code, message string) *Error  { return New(KindInvalid, code, message) }
func NotFound(code, message string) *Error { return New(KindNotFound, code, message) }
func Conflict(code, message string) *Error { return New(KindConflict, code, message) }

// Upstream builds an error attributed to a dependency. status is the
// upstream's HTTP status, or 0 when no response was received.
func Upstream(code, message string, status int, cause error) *Error {
	return &Error{Kind: KindUpstream, Code: code, Message: message, Status: status, Err: cause}
}

// UpstreamNotFound builds a not-found error reported by a dependency. It
// keeps the upstream status and cause like Upstream does.
func UpstreamNotFound(code, message string, status int, cause error) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message, Status: status, Err: cause}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: message, Err: cause}
}

// WithCode returns a copy of e carrying a different code.
func (e *Error) WithCode(code string) *Error {
	cp := *e
	cp.Code = code
	return &cp
}

// As extracts the *Error in err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// CodeOf returns the code of err, or "" for uncoded errors.
func CodeOf(err error) string {
	if ae, ok := As(err); ok {
		return ae.Code
	}
	return ""
}

// IsCode reports whether err carries code.
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

func StatusForKind(k Kind) int {
	switch k {
	case KindInvalid:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Resolve maps any error to the (status, code, message) triple written at
// the service boundary. Uncoded errors become 500 INTERNAL_ERROR.
func Resolve(err error) (int, string, string) {
	if ae, ok := As(err); ok {
		msg := ae.Message
		if msg == "" {
			msg = http.StatusText(StatusForKind(ae.Kind))
		}
		return StatusForKind(ae.Kind), ae.Code, msg
	}
	return http.StatusInternalServerError, CodeInternal, "Internal server error"
}
