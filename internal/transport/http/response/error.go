package response

import (
	"errors"
	"net/http"

	"github.com/baechuer/account-service/internal/domain"
	"github.com/baechuer/account-service/internal/logger"
	appCtx "github.com/baechuer/account-service/internal/pkg/context"
)

type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	Meta      map[string]string   `json:"meta,omitempty"`
	Fields    map[string][]string `json:"fields,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// WriteError converts a domain error into a consistent JSON HTTP error response.
// Non-domain errors are treated as internal errors (500) without leaking details.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	payload := ErrorPayload{
		Code:      "internal_error",
		Message:   "internal error",
		RequestID: appCtx.GetRequestID(r.Context()),
	}

	var de *domain.Error
	if errors.As(err, &de) {
		status = StatusFromKind(de.Kind)
		payload.Code = de.Code
		payload.Message = de.Message
		payload.Meta = de.Meta
		payload.Fields = de.Fields
	}

	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	WriteJSON(w, status, ErrorBody{Error: payload})
}

// StatusFromKind maps domain error kinds to HTTP status codes.
// Credential and conflict failures are client errors (400), not 401/409.
func StatusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindInvalidArgument,
		domain.KindEmptyValue,
		domain.KindValidation,
		domain.KindConflict,
		domain.KindUnauthorized:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
