package links

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrorCode enumerates every failure kind a share-link request can surface.
type ErrorCode int

const (
	CodeInvalidURL ErrorCode = iota
	CodeURLNotFound
	CodeUnexpectedError
	CodeInvalidEmail
	CodeEmailNotFound
	CodeInvalidToken
	CodeInvalidAPIKey
	CodeInvalidArgument
	CodeValidationError
)

// String returns the wire name of the code, used in error response bodies.
func (c ErrorCode) String() string {
	switch c {
	case CodeInvalidURL:
		return "INVALID_URL"
	case CodeURLNotFound:
		return "URL_NOT_FOUND"
	case CodeUnexpectedError:
		return "UNEXPECTED_ERROR"
	case CodeInvalidEmail:
		return "INVALID_EMAIL"
	case CodeEmailNotFound:
		return "EMAIL_NOT_FOUND"
	case CodeInvalidToken:
		return "INVALID_TOKEN"
	case CodeInvalidAPIKey:
		return "INVALID_API_KEY"
	case CodeInvalidArgument:
		return "INVALID_ARGUMENT"
	case CodeValidationError:
		return "VALIDATION_ERROR"
	default:
		panic(fmt.Sprintf("unknown share link error code: %d", int(c)))
	}
}

// ShareLinkError is a classified failure: one taxonomy code bound to its
// HTTP status and canonical message. CorrelationID is set only for
// server-fault (500-class) errors so a client report can be matched to the
// server log line without leaking the internal error.
type ShareLinkError struct {
	Code          ErrorCode
	HTTPStatus    int
	Message       string
	CorrelationID string

	// Internal is the unclassified cause behind an UNEXPECTED_ERROR. It is
	// logged, never sent to the client.
	Internal error
}

func (e *ShareLinkError) Error() string { return e.Message }

// Unwrap exposes the internal cause to errors.Is/As chains.
func (e *ShareLinkError) Unwrap() error { return e.Internal }

// NewError returns the ShareLinkError for a taxonomy code with its
// canonical status and message. Panics on a code outside the enum, which
// is unreachable with valid values.
func NewError(code ErrorCode) *ShareLinkError {
	status, msg := errorByCode(code)
	return &ShareLinkError{Code: code, HTTPStatus: status, Message: msg}
}

// NewErrorf returns the ShareLinkError for code with extra detail appended
// to the canonical message.
func NewErrorf(code ErrorCode, format string, args ...any) *ShareLinkError {
	e := NewError(code)
	e.Message = e.Message + " " + fmt.Sprintf(format, args...)
	return e
}

// NewUnexpectedError wraps an unclassified failure as UNEXPECTED_ERROR
// with a fresh correlation id appended to the client-visible message.
func NewUnexpectedError(internal error) *ShareLinkError {
	e := NewError(CodeUnexpectedError)
	e.CorrelationID = uuid.New().String()
	e.Internal = internal
	e.Message = fmt.Sprintf(
		"%s If this error persists, please contact us and reference error ID: %s",
		e.Message, e.CorrelationID)
	return e
}

// errorByCode maps a taxonomy code to its HTTP status and canonical
// message. Total over the enum; the panic in the default branch guards
// against a code being added without a mapping.
func errorByCode(code ErrorCode) (int, string) {
	switch code {
	case CodeInvalidURL:
		return http.StatusBadRequest, "The provided URL was missing or invalid."
	case CodeURLNotFound:
		return http.StatusNotFound, "No share links were found for the provided URL."
	case CodeUnexpectedError:
		return http.StatusInternalServerError, "An unexpected error occurred."
	case CodeInvalidEmail:
		return http.StatusBadRequest, "Email is invalid or one was not provided."
	case CodeEmailNotFound:
		return http.StatusBadRequest, "Email could not be found."
	case CodeInvalidToken:
		return http.StatusForbidden,
			"Invalid ID token. Please verify token is correct and has not expired."
	case CodeInvalidAPIKey:
		return http.StatusForbidden,
			"Invalid or disabled API key. Please verify key is correct " +
				"or reach out to us to acquire a key."
	case CodeInvalidArgument:
		return http.StatusBadRequest,
			"Invalid or missing argument in request body. " +
				"Please verify required arguments are present and correct."
	case CodeValidationError:
		return http.StatusBadRequest, "Request failed validation."
	default:
		panic(fmt.Sprintf("unknown share link error code: %d", int(code)))
	}
}
