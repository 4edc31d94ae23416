// Package respond writes the JSON envelope shared by every API endpoint.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
)

const (
	CodeInvalidBody   = "INVALID_BODY"
	CodeInternalError = "INTERNAL_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"

	internalMessage = "Something went wrong"
)

// Envelope is a success body. Endpoints add their payload under a named key.
type Envelope map[string]any

type errorBody struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type errorEnvelope struct {
	OK    bool      `json:"ok"`
	Error errorBody `json:"error"`
}

// OK writes {"ok":true,key:payload}.
func OK(w http.ResponseWriter, r *http.Request, status int, key string, payload any) {
	JSON(w, r, status, Envelope{"ok": true, key: payload})
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

// Error maps err onto a status and error envelope. Errors outside the domain
// taxonomy are logged and hidden behind a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)

	if status == http.StatusInternalServerError {
		Log(r, "request failed", err)
	}

	JSON(w, r, status, errorEnvelope{Error: body})
}

// Log records err at error level with the request id.
func Log(r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg,
		"error", err,
		"request_id", middleware.GetReqID(r.Context()),
		"path", r.URL.Path,
	)
}

// Status returns the HTTP status err maps to.
func Status(err error) int {
	status, _ := classify(err)
	return status
}

func classify(err error) (int, errorBody) {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, errorBody{
			Type:    CodeInvalidBody,
			Message: "Invalid request",
			Errors:  verr.Fields,
		}
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, errorBody{Type: CodeInternalError, Message: internalMessage}
	}

	body := errorBody{Type: appErr.Code, Message: appErr.Message}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, body
	case errors.Is(err, apperr.ErrAlreadyExists), errors.Is(err, apperr.ErrNotDeletable):
		return http.StatusBadRequest, body
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, body
	case errors.Is(err, apperr.ErrInvalidCredentials), errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, body
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity, body
	default:
		return http.StatusInternalServerError, errorBody{Type: CodeInternalError, Message: internalMessage}
	}
}

// Option is one autocomplete suggestion.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Deleted writes {"ok":true}.
func Deleted(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, Envelope{"ok": true})
}
