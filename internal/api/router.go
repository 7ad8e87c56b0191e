package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/techiepharm/FinSim-sub001/internal/api/handlers"
	custommiddleware "github.com/techiepharm/FinSim-sub001/internal/api/middleware"
	"github.com/techiepharm/FinSim-sub001/internal/config"
	"github.com/techiepharm/FinSim-sub001/internal/metrics"
	"github.com/techiepharm/FinSim-sub001/internal/service"
)

// Dependencies is everything the router serves.
type Dependencies struct {
	System    *service.SystemService
	Trading   *service.TradingService
	Analytics *service.AnalyticsService
	Market    *service.MarketService

	// Advisory serves the websocket stream. Nil disables /api/advisory/ws.
	Advisory http.Handler

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer // nil disables /metrics
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps Dependencies, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(custommiddleware.Metrics(deps.Metrics))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(deps.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(deps.Market, deps.Analytics)
			r.Get("/instruments", marketHandler.Instruments)
			r.Get("/instruments/{symbol}/series", marketHandler.Series)
			r.Get("/instruments/{symbol}/suggestion", marketHandler.Suggestion)
			r.Post("/refresh", marketHandler.Refresh)
		})

		r.Route("/portfolio/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)

			portfolioHandler := handlers.NewPortfolioHandler(deps.Trading)
			r.Get("/", portfolioHandler.Portfolio)
			r.Get("/transactions", portfolioHandler.Transactions)
			r.Post("/orders", portfolioHandler.ExecuteOrder)
			r.Post("/savings/deposit", portfolioHandler.Deposit)
			r.Post("/savings/withdraw", portfolioHandler.Withdraw)
			r.Post("/premium", portfolioHandler.Premium)

			analyticsHandler := handlers.NewAnalyticsHandler(deps.Analytics)
			r.Route("/analytics", func(r chi.Router) {
				r.Get("/valuation", analyticsHandler.Valuation)
				r.Get("/metrics", analyticsHandler.Metrics)
				r.Get("/categories", analyticsHandler.Categories)
				r.Get("/risk", analyticsHandler.Risk)
				r.Get("/recommendations", analyticsHandler.Recommendations)
			})
		})

		if deps.Advisory != nil {
			r.Handle("/advisory/ws", deps.Advisory)
		}
	})

	return r
}
