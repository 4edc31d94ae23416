// Package handlertest mounts handlers on a router for tests.
package handlertest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fintrack/internal/session"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

// User returns a user holding roles.
func User(roles ...string) *user.User {
	u := &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	for _, name := range roles {
		u.Roles = append(u.Roles, user.Role{ID: uuid.New(), Name: name})
	}

	return u
}

// As attaches u to the request as the session user.
func As(r *http.Request, u *user.User) *http.Request {
	return r.WithContext(session.WithUser(r.Context(), u))
}

// Serve routes r through routes mounted at prefix.
func Serve(prefix string, routes func(chi.Router), r *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Route(prefix, routes)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	return w
}

// Decode unmarshals the recorded body into a generic map.
func Decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

// ErrorType extracts error.type from an error envelope.
func ErrorType(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	body := Decode(t, w)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", w.Body.String())

	typ, _ := errBody["type"].(string)

	return typ
}
