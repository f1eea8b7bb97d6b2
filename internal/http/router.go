package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/paytrace/internal/http/invoice"
	"github.com/MrJamesThe3rd/paytrace/internal/http/recon"
	"github.com/MrJamesThe3rd/paytrace/internal/http/statement"
)

func New(
	invoicesV1 *invoice.Handler,
	statementsV1 *statement.Handler,
	reconV1 *recon.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// The frontend is served from elsewhere; the API accepts any origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	router.Route("/api", func(r chi.Router) {
		invoicesV1.Routes(r)
		statementsV1.Routes(r)
		reconV1.Routes(r)
	})

	return router
}
