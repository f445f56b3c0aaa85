package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/levaetras/internal/auth"
	"github.com/MrJamesThe3rd/levaetras/internal/http/importcsv"
	"github.com/MrJamesThe3rd/levaetras/internal/http/invoice"
	"github.com/MrJamesThe3rd/levaetras/internal/http/request"
	"github.com/MrJamesThe3rd/levaetras/internal/http/statement"
	"github.com/MrJamesThe3rd/levaetras/internal/http/transaction"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

type Handlers struct {
	Requests      *request.Handler
	Invoices      *invoice.Handler
	Transactions  *transaction.Handler
	Neighborhoods *importcsv.Handler
	Statements    *statement.Handler
}

func New(tokens *auth.Tokens, origins []string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Heartbeat("/health"))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(tokens))

		r.Route("/requests", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Requests.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Invoices.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/settings/neighborhoods", func(r chi.Router) {
			r.Use(auth.RequireRole(settings.UserAdmin))
			h.Neighborhoods.Routes(r)
		})

		r.Route("/statements", func(r chi.Router) {
			r.Use(auth.RequireRole(settings.UserAdmin))
			r.Use(middleware.AllowContentType("application/json"))
			h.Statements.Routes(r)
		})
	})

	return router
}
