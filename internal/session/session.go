// Package session issues and resolves signed session tokens.
//
// A token is an HS256 JWT carrying the user id, username and email. Browsers
// receive it in an HttpOnly cookie and API clients may send it as a bearer token.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

const CookieName = "fintrack_session"

const issuer = "fintrack"

type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

// UserGetter loads the user a token refers to.
type UserGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	users  UserGetter
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, secureCookie bool, users UserGetter) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secureCookie,
		users:  users,
		now:    time.Now,
	}
}

// Issue returns a signed token for u.
func (m *Manager) Issue(u *user.User) (string, error) {
	now := m.now()

	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}

	return signed, nil
}

// Parse verifies the signature and expiry of token.
func (m *Manager) Parse(token string) (*Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing session token: %w", err)
	}

	return &claims, nil
}

// CurrentUser resolves token to its user. A missing, invalid or expired token,
// or one whose user no longer exists, yields nil without an error.
func (m *Manager) CurrentUser(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := m.Parse(token)
	if err != nil {
		return nil, nil
	}

	u, err := m.users.Get(ctx, claims.UserID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session user: %w", err)
	}

	return u, nil
}

func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware attaches the current user, if any, to the request context. A
// session that cannot be resolved is logged and the request continues as
// anonymous, leaving the response to the authorization layer.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := m.CurrentUser(r.Context(), tokenFrom(r))
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to resolve session", "error", err)
		}

		if u != nil {
			r = r.WithContext(WithUser(r.Context(), u))
		}

		next.ServeHTTP(w, r)
	})
}

// tokenFrom prefers the session cookie over an Authorization bearer token.
func tokenFrom(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}

type userKey struct{}

func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFrom returns the authenticated user stored by Middleware.
func UserFrom(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userKey{}).(*user.User)
	return u, ok && u != nil
}
