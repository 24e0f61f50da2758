package apperror

import "net/http"

// Kind classifies an error independently of the HTTP status it maps to,
// so callers and tests can branch on the failure class rather than on
// message text.
type Kind string

const (
	KindUnauthenticated      Kind = "unauthenticated"
	KindForbidden            Kind = "forbidden"
	KindNotFound             Kind = "not_found"
	KindBadRequest           Kind = "bad_request"
	KindDuplicateInteraction Kind = "duplicate_interaction"
	KindAmbiguousJob         Kind = "ambiguous_job"
	KindAlreadyTerminal      Kind = "already_terminal"
	KindAlreadyWithdrawn     Kind = "already_withdrawn"
	KindPreconditionFailed   Kind = "precondition_failed"
	KindSecurityViolation    Kind = "security_violation"
	KindUnavailable          Kind = "unavailable"
	KindInternal             Kind = "internal"
)

type AppError struct {
	Code    int         `json:"code"`
	Kind    Kind        `json:"kind"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthenticated, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

// Duplicate signals a uniqueness-constraint violation; the message is
// chosen by the caller so it can be role-appropriate.
func Duplicate(message string) *AppError {
	return New(http.StatusConflict, KindDuplicateInteraction, message, nil)
}

// AmbiguousJob carries the set of candidate postings the caller can pick
// from to disambiguate a recruiter contact.
func AmbiguousJob(message string, jobs interface{}) *AppError {
	e := New(http.StatusConflict, KindAmbiguousJob, message, nil)
	e.Details = jobs
	return e
}

func AlreadyTerminal(message string) *AppError {
	return New(http.StatusConflict, KindAlreadyTerminal, message, nil)
}

func AlreadyWithdrawn(message string) *AppError {
	return New(http.StatusConflict, KindAlreadyWithdrawn, message, nil)
}

func PreconditionFailed(message string) *AppError {
	return New(http.StatusUnprocessableEntity, KindPreconditionFailed, message, nil)
}

// SecurityViolation marks a sanitizer breach. It is a programming-error
// class fault: it must abort the response and is never downgraded.
func SecurityViolation(message string) *AppError {
	return New(http.StatusInternalServerError, KindSecurityViolation, message, nil)
}

// Unavailable marks a storage or downstream timeout; safe to retry.
func Unavailable(err error) *AppError {
	return New(http.StatusServiceUnavailable, KindUnavailable, "Service temporarily unavailable. Please try again.", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}
