package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindInvalidArgument    ErrKind = "invalid_argument"    // 400
	KindEmptyValue         ErrKind = "empty_value"         // 400
	KindValidation         ErrKind = "validation"          // 400
	KindConflict           ErrKind = "conflict"            // 400
	KindUnauthorized       ErrKind = "unauthorized"        // 400
	KindAuth               ErrKind = "auth"                // 401
	KindNotFound           ErrKind = "not_found"           // 404
	KindStorageUnavailable ErrKind = "storage_unavailable" // 500
	KindInternal           ErrKind = "internal"            // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Meta: optional details (field, reason, etc.)
// - Fields: per-field violation messages for validation_failed
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
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

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// KindOf returns the kind of a domain error, or "" for anything else.
func KindOf(err error) ErrKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// ----------------------
// Formatter errors (400)
// ----------------------

func ErrInvalidArgument(field, reason string) *Error {
	return WithMeta(New(KindInvalidArgument, "invalid_argument", reason), map[string]string{
		"field": field,
	})
}

func ErrEmptyValue(field string) *Error {
	return WithMeta(New(KindEmptyValue, "empty_value", "value cannot be empty"), map[string]string{
		"field": field,
	})
}

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindInvalidArgument, "invalid_json", "invalid JSON body", cause)
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "all fields are required"), map[string]string{
		"field": field,
	})
}

func ErrPasswordMismatch() *Error {
	return New(KindValidation, "password_mismatch", "passwords don't match")
}

// ErrValidationFailed carries the complete per-field report so clients can render every message.
func ErrValidationFailed(fields map[string][]string) *Error {
	e := New(KindValidation, "validation_failed", "user data is invalid")
	e.Fields = fields
	return e
}

// ----------------------
// Conflict (400)
// ----------------------

func ErrEmailAlreadyExists() *Error {
	return New(KindConflict, "email_already_exists", "email already exists")
}

func ErrUsernameAlreadyExists() *Error {
	return New(KindConflict, "username_already_exists", "username already taken")
}

// ----------------------
// Credential errors (400)
// ----------------------

func ErrLoginUserNotFound() *Error {
	return New(KindUnauthorized, "user_not_found", "user not found")
}

func ErrInvalidCredentials() *Error {
	return New(KindUnauthorized, "invalid_credentials", "invalid email or password")
}

// ----------------------
// Token errors (401)
// ----------------------

func ErrTokenMissing() *Error {
	return New(KindAuth, "token_missing", "no token provided")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "invalid token")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "token is expired")
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "user not found")
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrStorageUnavailable(cause error) *Error {
	return Wrap(KindStorageUnavailable, "storage_unavailable", "storage unavailable", cause)
}

func ErrCacheUnavailable(cause error) *Error {
	return Wrap(KindStorageUnavailable, "cache_unavailable", "cache unavailable", cause)
}

func ErrBrokerUnavailable(cause error) *Error {
	return Wrap(KindStorageUnavailable, "broker_unavailable", "message broker unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
