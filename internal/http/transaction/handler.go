package transaction

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/http/auth"
	"github.com/MrJamesThe3rd/fintrack/internal/http/request"
	"github.com/MrJamesThe3rd/fintrack/internal/http/respond"
	"github.com/MrJamesThe3rd/fintrack/internal/importer"
	"github.com/MrJamesThe3rd/fintrack/internal/session"
	"github.com/MrJamesThe3rd/fintrack/internal/transaction"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(auth.RequireRole(user.RoleAdmin)).Get("/", h.list)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(user.RoleMember))
		r.Post("/", h.create)
		r.Post("/import", h.importCSV)
		r.Get("/me", h.listMine)
		r.Get("/me/summary", h.summary)
		r.Get("/me/export", h.exportCSV)
		r.Delete("/{id}", h.delete)
	})
}

// currentUser is only called behind RequireRole, which guarantees a user.
func currentUser(r *http.Request) *user.User {
	u, _ := session.UserFrom(r.Context())
	return u
}

type createTransactionRequest struct {
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	CurrencyID  string          `json:"currency_id" validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description"`
	Date        string          `json:"date" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	date, err := importer.ParseDate(req.Date)
	if err != nil {
		respond.Error(w, r, apperr.Invalid("date", "must be YYYY-MM-DD or RFC 3339"))
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		UserID:      currentUser(r).ID,
		CategoryID:  uuid.MustParse(req.CategoryID),
		CurrencyID:  uuid.MustParse(req.CurrencyID),
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusCreated, "transaction", toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query(), true)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusOK, "transactions", toResponseList(txs))
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query(), false)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	txs, err := h.svc.ListByUser(r.Context(), currentUser(r).ID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusOK, "transactions", toResponseList(txs))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query(), false)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	totals, err := h.svc.Summarize(r.Context(), currentUser(r).ID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusOK, "summary", toTotalList(totals))
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query(), false)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	txs, err := h.svc.ListByUser(r.Context(), currentUser(r).ID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	// Headers are already out, so a failure here can only be logged.
	if err := importer.Write(w, txs); err != nil {
		respond.Log(r, "failed to write export", err)
	}
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, r, apperr.Invalid("file", "must be at most %d MB", maxUploadBytes>>20))
			return
		}

		respond.Error(w, r, apperr.Invalid("file", "is required"))

		return
	}
	defer file.Close()

	rows, err := importer.Parse(file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	n, err := h.svc.Import(r.Context(), currentUser(r).ID, rows)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusCreated, "imported", n)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, transaction.ErrNotFound)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), currentUser(r).ID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Deleted(w, r)
}
