// Package account serves registration, login and logout for API clients.
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fintrack/internal/http/request"
	"github.com/MrJamesThe3rd/fintrack/internal/http/respond"
	httpuser "github.com/MrJamesThe3rd/fintrack/internal/http/user"
	"github.com/MrJamesThe3rd/fintrack/internal/session"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

type Handler struct {
	users    *user.Service
	sessions *session.Manager
}

func NewHandler(users *user.Service, sessions *session.Manager) *Handler {
	return &Handler{users: users, sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=64"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User  httpuser.Response `json:"user"`
	Token string            `json:"token"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	u, err := h.users.Register(r.Context(), user.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.start(w, r, http.StatusCreated, u)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.start(w, r, http.StatusOK, u)
}

// start issues a session for u, sets the cookie and echoes the token for
// clients that prefer a bearer header.
func (h *Handler) start(w http.ResponseWriter, r *http.Request, status int, u *user.User) {
	token, err := h.sessions.Issue(u)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.sessions.SetCookie(w, token)

	respond.OK(w, r, status, "session", sessionResponse{User: httpuser.ToResponse(u), Token: token})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	respond.Deleted(w, r)
}
