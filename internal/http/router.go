package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/auth"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/events"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/expense"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/exportcsv"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/importcsv"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/inventory"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/ledger"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/session"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/suggest"
)

func New(
	authSvc *auth.Service,
	sessionV1 *session.Handler,
	ledgerV1 *ledger.Handler,
	inventoryV1 *inventory.Handler,
	expensesV1 *expense.Handler,
	exportV1 *exportcsv.Handler,
	importV1 *importcsv.Handler,
	suggestV1 *suggest.Handler,
	eventsV1 *events.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			sessionV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireSession(authSvc))

			r.Route("/ledger", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				ledgerV1.Routes(r)
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				inventoryV1.Routes(r)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				expensesV1.Routes(r)
			})

			r.Route("/export", exportV1.Routes)
			r.Route("/import", importV1.Routes)

			r.Route("/suggest", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				suggestV1.Routes(r)
			})

			r.Route("/events", eventsV1.Routes)
		})
	})

	return router
}
