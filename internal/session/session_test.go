package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fintrack/internal/session"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

type fakeUsers struct {
	users map[uuid.UUID]*user.User
	err   error
}

func (f *fakeUsers) Get(_ context.Context, id uuid.UUID) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}

	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}

	return u, nil
}

func newFixture(ttl time.Duration) (*session.Manager, *user.User, *fakeUsers) {
	u := &user.User{ID: uuid.New(), Username: "jane", Email: "jane@example.com"}
	users := &fakeUsers{users: map[uuid.UUID]*user.User{u.ID: u}}

	return session.NewManager("test-secret", ttl, false, users), u, users
}

func TestManager_IssueAndParse(t *testing.T) {
	m, u, _ := newFixture(time.Hour)

	token, err := m.Issue(u)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestManager_CurrentUser(t *testing.T) {
	m, u, users := newFixture(time.Hour)

	token, err := m.Issue(u)
	require.NoError(t, err)

	expired, _, _ := newFixture(-time.Minute)
	expiredToken, err := expired.Issue(u)
	require.NoError(t, err)

	otherKey := session.NewManager("other-secret", time.Hour, false, users)
	foreignToken, err := otherKey.Issue(u)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantNil bool
	}{
		{name: "valid", token: token},
		{name: "empty", token: "", wantNil: true},
		{name: "garbage", token: "not.a.jwt", wantNil: true},
		{name: "expired", token: expiredToken, wantNil: true},
		{name: "signed with another key", token: foreignToken, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.CurrentUser(context.Background(), tt.token)
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, u.ID, got.ID)
		})
	}
}

func TestManager_CurrentUser_DeletedUser(t *testing.T) {
	m, u, users := newFixture(time.Hour)

	token, err := m.Issue(u)
	require.NoError(t, err)

	delete(users.users, u.ID)

	got, err := m.CurrentUser(context.Background(), token)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestManager_CurrentUser_StorageError(t *testing.T) {
	m, u, users := newFixture(time.Hour)

	token, err := m.Issue(u)
	require.NoError(t, err)

	users.err = errors.New("connection refused")

	_, err = m.CurrentUser(context.Background(), token)
	assert.Error(t, err)
}

func TestManager_Middleware(t *testing.T) {
	m, u, _ := newFixture(time.Hour)

	token, err := m.Issue(u)
	require.NoError(t, err)

	var seen *user.User
	handler := m.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = session.UserFrom(r.Context())
	}))

	t.Run("Cookie", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.NotNil(t, seen)
		assert.Equal(t, u.ID, seen.ID)
	})

	t.Run("BearerToken", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.NotNil(t, seen)
	})

	t.Run("Anonymous", func(t *testing.T) {
		seen = nil
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Nil(t, seen)
	})
}

func TestManager_Middleware_StorageErrorContinuesAnonymous(t *testing.T) {
	m, u, users := newFixture(time.Hour)

	token, err := m.Issue(u)
	require.NoError(t, err)

	users.err = errors.New("connection refused")

	var (
		called bool
		seen   *user.User
	)
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen, _ = session.UserFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Nil(t, seen)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestManager_Cookies(t *testing.T) {
	m, _, _ := newFixture(2 * time.Hour)

	rec := httptest.NewRecorder()
	m.SetCookie(rec, "abc")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, 7200, cookies[0].MaxAge)

	rec = httptest.NewRecorder()
	m.ClearCookie(rec)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}
