package currency

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/http/auth"
	"github.com/MrJamesThe3rd/fintrack/internal/http/request"
	"github.com/MrJamesThe3rd/fintrack/internal/http/respond"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

type Handler struct {
	svc *currency.Service
}

func NewHandler(svc *currency.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/autocomplete", h.autocomplete)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(user.RoleAdmin))
		r.Post("/", h.create)
		r.Delete("/{id}", h.delete)
	})
}

type createCurrencyRequest struct {
	Code   string `json:"currency_code" validate:"required,len=3"`
	Name   string `json:"currency_name" validate:"required,min=3,max=64"`
	Symbol string `json:"currency_symbol" validate:"required,max=8"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCurrencyRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), currency.CreateParams{
		Code:   strings.ToUpper(req.Code),
		Name:   req.Name,
		Symbol: req.Symbol,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusCreated, "currency", toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	curs, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusOK, "currencies", toResponseList(curs))
}

func (h *Handler) autocomplete(w http.ResponseWriter, r *http.Request) {
	curs, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	options := make([]respond.Option, len(curs))
	for i, c := range curs {
		options[i] = respond.Option{Label: c.Label(), Value: c.ID.String()}
	}

	respond.JSON(w, r, http.StatusOK, options)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, currency.ErrNotFound)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Deleted(w, r)
}
