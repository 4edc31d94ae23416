package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/http/respond"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
	"github.com/MrJamesThe3rd/fintrack/internal/transaction"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

type errorResponse struct {
	OK    bool `json:"ok"`
	Error struct {
		Type    string            `json:"type"`
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	} `json:"error"`
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantMsg    string
	}{
		{
			name:       "not found",
			err:        fmt.Errorf("getting operation: %w", operation.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantType:   "OPERATION_NOT_FOUND",
			wantMsg:    "Operation not found",
		},
		{
			name:       "already exists",
			err:        operation.ErrAlreadyExists,
			wantStatus: http.StatusBadRequest,
			wantType:   "OPERATION_ALREADY_EXISTS",
		},
		{
			name:       "not deletable",
			err:        operation.ErrNotDeletable,
			wantStatus: http.StatusBadRequest,
			wantType:   "OPERATION_NOT_DELETABLE",
		},
		{
			name:       "forbidden",
			err:        transaction.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantType:   "FORBIDDEN",
		},
		{
			name:       "invalid credentials",
			err:        user.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantType:   "INVALID_CREDENTIALS",
		},
		{
			name:       "unknown error is hidden",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantType:   "INTERNAL_ERROR",
			wantMsg:    "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body errorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.False(t, body.OK)
			assert.Equal(t, tt.wantType, body.Error.Type)

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body.Error.Message)
			}
		})
	}
}

func TestError_Validation(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	respond.Error(w, r, fmt.Errorf("creating: %w", apperr.Invalid("name", "is required")))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "INVALID_BODY", body.Error.Type)
	assert.Equal(t, map[string]string{"name": "is required"}, body.Error.Errors)
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.OK(w, r, http.StatusCreated, "imported", 3)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true,"imported":3}`, w.Body.String())
}
