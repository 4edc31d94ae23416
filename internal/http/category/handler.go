package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/http/auth"
	"github.com/MrJamesThe3rd/fintrack/internal/http/request"
	"github.com/MrJamesThe3rd/fintrack/internal/http/respond"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
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

type createCategoryRequest struct {
	Name        string `json:"category_name" validate:"required,min=3,max=64"`
	OperationID string `json:"operation_id" validate:"required,uuid"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), req.Name, uuid.MustParse(req.OperationID))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusCreated, "category", toResponse(c))
}

// fetch honours ?operation_id. A malformed id lists every category.
func (h *Handler) fetch(r *http.Request) ([]*category.Category, error) {
	if id, err := uuid.Parse(r.URL.Query().Get("operation_id")); err == nil {
		return h.svc.ListByOperation(r.Context(), id)
	}

	return h.svc.List(r.Context())
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cats, err := h.fetch(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusOK, "categories", toResponseList(cats))
}

func (h *Handler) autocomplete(w http.ResponseWriter, r *http.Request) {
	cats, err := h.fetch(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	options := make([]respond.Option, len(cats))
	for i, c := range cats {
		options[i] = respond.Option{Label: c.Name, Value: c.ID.String()}
	}

	respond.JSON(w, r, http.StatusOK, options)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, category.ErrNotFound)
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
