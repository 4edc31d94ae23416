package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/http/account"
	"github.com/MrJamesThe3rd/fintrack/internal/http/category"
	"github.com/MrJamesThe3rd/fintrack/internal/http/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/http/operation"
	"github.com/MrJamesThe3rd/fintrack/internal/http/pages"
	"github.com/MrJamesThe3rd/fintrack/internal/http/respond"
	"github.com/MrJamesThe3rd/fintrack/internal/http/security"
	"github.com/MrJamesThe3rd/fintrack/internal/http/transaction"
	"github.com/MrJamesThe3rd/fintrack/internal/http/user"
	"github.com/MrJamesThe3rd/fintrack/internal/session"
)

var (
	errRouteNotFound    = apperr.New(apperr.ErrNotFound, "NOT_FOUND", "Resource not found")
	errMethodNotAllowed = apperr.New(apperr.ErrValidation, "METHOD_NOT_ALLOWED", "Method not allowed")
)

type Handlers struct {
	Operations   *operation.Handler
	Categories   *category.Handler
	Currencies   *currency.Handler
	Transactions *transaction.Handler
	Users        *user.Handler
	Account      *account.Handler
	Pages        *pages.Pages
}

type Options struct {
	AllowedOrigins []string
	Headers        security.Headers
}

func New(h Handlers, sessions *session.Manager, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(sessions.Middleware)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respond.Error(w, r, errRouteNotFound)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			respond.JSON(w, r, http.StatusMethodNotAllowed, respond.Envelope{
				"ok":    false,
				"error": respond.Envelope{"type": errMethodNotAllowed.Code, "message": errMethodNotAllowed.Message},
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.Route("/operations", h.Operations.Routes)
			r.Route("/categories", h.Categories.Routes)
			r.Route("/currencies", h.Currencies.Routes)
			r.Route("/users", h.Users.Routes)
			r.Route("/auth", h.Account.Routes)
		})

		// Imports post multipart bodies.
		r.Route("/transactions", h.Transactions.Routes)
	})

	router.Group(func(r chi.Router) {
		r.Use(opts.Headers.Middleware)
		r.NotFound(h.Pages.NotFound)
		h.Pages.Routes(r)
	})

	return router
}
