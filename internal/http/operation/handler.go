package operation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fintrack/internal/http/auth"
	"github.com/MrJamesThe3rd/fintrack/internal/http/request"
	"github.com/MrJamesThe3rd/fintrack/internal/http/respond"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

type Handler struct {
	svc *operation.Service
}

func NewHandler(svc *operation.Service) *Handler {
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

type createOperationRequest struct {
	Name string `json:"operation_name" validate:"required,min=3,max=64"`
	Type string `json:"operation_type" validate:"required,oneof=income expense investment"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createOperationRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	op, err := h.svc.Create(r.Context(), req.Name, operation.Type(req.Type))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusCreated, "operation", toResponse(op))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ops, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusOK, "operations", toResponseList(ops))
}

func (h *Handler) autocomplete(w http.ResponseWriter, r *http.Request) {
	ops, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	options := make([]respond.Option, len(ops))
	for i, op := range ops {
		options[i] = respond.Option{Label: op.Name, Value: op.ID.String()}
	}

	respond.JSON(w, r, http.StatusOK, options)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, operation.ErrNotFound)
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
