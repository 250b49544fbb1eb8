package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindAuth           ErrKind = "auth"           // 401
	KindForbidden      ErrKind = "forbidden"      // 403
	KindNotFound       ErrKind = "not_found"      // 404
	KindConflict       ErrKind = "conflict"       // 409
	KindRateLimited    ErrKind = "rate_limited"   // 429
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Fields: per-field validation messages, set only by the validation layer
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Fields  map[string][]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

// ErrInvalidInput carries a field -> messages mapping built by the
// validation layer, so callers never inspect error shapes at runtime.
func ErrInvalidInput(fields map[string][]string) *Error {
	e := New(KindValidation, "invalid_input", "invalid input")
	e.Fields = fields
	return e
}

func ErrMissingField(field string) *Error {
	return ErrInvalidInput(map[string][]string{field: {"is required"}})
}

// ErrInvalidVerificationLink covers empty or malformed verification URLs.
func ErrInvalidVerificationLink() *Error {
	return New(KindValidation, "invalid_link", "invalid link")
}

// ----------------------
// Auth errors (401)
// ----------------------

// IMPORTANT: the single error for every credential failure at login.
// Unknown email, password-less account and wrong password must be
// byte-identical to resist account enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "invalid email or password")
}

func ErrUnauthenticated() *Error {
	return New(KindAuth, "unauthenticated", "authentication required")
}

// ----------------------
// Forbidden (403)
// ----------------------

// ErrEmailNotVerified intentionally differs from ErrInvalidCredentials:
// revealing that an existing, correctly-authenticated account still
// needs verification is a deliberate product trade-off.
func ErrEmailNotVerified() *Error {
	return New(KindForbidden, "email_not_verified", "email not verified")
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "user not found")
}

// ErrVerificationTokenInvalid means the token was never issued or was
// already consumed; tokens carry no TTL, so "expired" only ever means
// "burned".
func ErrVerificationTokenInvalid() *Error {
	return New(KindNotFound, "verification_token_invalid", "invalid or expired token")
}

// ----------------------
// Conflict (409)
// ----------------------

func ErrEmailAlreadyExists() *Error {
	return New(KindConflict, "email_already_exists", "email already registered")
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(scope string) *Error {
	e := New(KindRateLimited, "rate_limited", "too many requests")
	e.Fields = map[string][]string{"scope": {scope}}
	return e
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

// ErrMailNotAccepted reports that the outbound mail transport did not
// acknowledge the message. Registration treats this as a warning, not
// a failure: the account exists and the send can be retried.
func ErrMailNotAccepted(cause error) *Error {
	return Wrap(KindInfrastructure, "mail_not_accepted", "verification email could not be sent", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrRandomFailed(cause error) *Error {
	return Wrap(KindInternal, "random_failed", "random generation failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
