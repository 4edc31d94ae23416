package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fintrack/internal/http/auth"
	"github.com/MrJamesThe3rd/fintrack/internal/http/respond"
	"github.com/MrJamesThe3rd/fintrack/internal/session"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(auth.RequireUser).Get("/me", h.me)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, _ := session.UserFrom(r.Context())

	respond.OK(w, r, http.StatusOK, "user", ToResponse(u))
}
