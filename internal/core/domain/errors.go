package domain

import "net/http"

// ErrorKind classifies a domain error independently of its HTTP status, so
// callers can branch on meaning without string matching.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimited
	KindUpstream
)

// Error is the typed failure every service layer returns. Status and Message
// are the exact values the transport layer serializes; Kind is what code
// branches on. Handlers never invent statuses of their own.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Errors carries field-level detail for validation failures.
	Errors []string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches on kind and message, so a sentinel wrapped with a cause still
// compares equal to the bare sentinel under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// WithCause returns a copy carrying the underlying error for logs. The
// public Status and Message are unchanged.
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.cause = cause
	return &clone
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

// Conflict reports a uniqueness collision. Served as 400, not 409, to keep
// the public contract stable.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

// ValidationFailed wraps field-level validator output under the generic
// "Validation failed" envelope.
func ValidationFailed(errs []string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: "Validation failed", Errors: errs}
}

func Upstream(message string) *Error {
	return &Error{Kind: KindUpstream, Status: http.StatusInternalServerError, Message: message}
}

// Sentinel errors shared across services. Messages are part of the public
// API contract; change them and clients break.
var (
	ErrInvalidCredentials = Unauthenticated("Invalid credentials")
	ErrTokenNotProvided   = Unauthenticated("Token not provided")
	ErrInvalidToken       = Unauthenticated("Invalid or expired token")
	ErrAuthHeaderFormat   = Unauthenticated("Authorization header missing or in wrong format")
	ErrAuthHeaderMissing  = Unauthenticated("Authorization header is missing")

	ErrForbidden = Forbidden("Forbidden")

	ErrUserNotFound     = NotFound("User not found")
	ErrPropertyNotFound = NotFound("Property not found")
	ErrFavoriteNotFound = NotFound("Favorite not found")

	ErrUserExists        = Conflict("User already exists")
	ErrDuplicateFavorite = Conflict("Property already in favorites")

	ErrAuthHeaderRequired = Validation("Authorization header is required")

	ErrProfileFetch = Upstream("Failed to fetch user")

	ErrTooManyLogins = &Error{Kind: KindRateLimited, Status: http.StatusTooManyRequests, Message: "Too many login attempts, try again later"}
)
