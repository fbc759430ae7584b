package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/config"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/service"
)

// Services groups the services the HTTP layer delegates to.
type Services struct {
	System      *service.SystemService
	Transaction *service.TransactionService
	Portfolio   *service.PortfolioService
	Summary     *service.SummaryService
	Sync        *service.SyncService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/stats", portfolioHandler.Stats)
			r.Get("/chart", portfolioHandler.ProfitChart)
		})

		summaryHandler := handlers.NewSummaryHandler(svc.Summary)
		r.Post("/summary", summaryHandler.Summary)

		r.Route("/sync", func(r chi.Router) {
			syncHandler := handlers.NewSyncHandler(svc.Sync)
			r.Post("/pull", syncHandler.Pull)
			r.Post("/push", syncHandler.Push)
			r.Get("/status", syncHandler.Status)
		})
	})

	return r
}
