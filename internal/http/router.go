package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	customerHandler "github.com/rvannote/billdash/internal/http/customer"
	importHandler "github.com/rvannote/billdash/internal/http/importcsv"
	invoiceHandler "github.com/rvannote/billdash/internal/http/invoice"
)

func New(
	invoicesV1 *invoiceHandler.Handler,
	customersV1 *customerHandler.Handler,
	importV1 *importHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/invoices", invoicesV1.APIRoutes)

		r.Get("/customer", customersV1.ListAll)
		r.Post("/customers/import", importV1.ImportCSV)
	})

	// Form submissions from the dashboard pages.
	router.Route("/dashboard", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/x-www-form-urlencoded", "multipart/form-data"))

		r.Route("/invoices", invoicesV1.DashboardRoutes)
		r.Route("/customers", customersV1.DashboardRoutes)
	})

	return router
}
