package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/techiepharm/FinSim-sub001/internal/advisory"
	"github.com/techiepharm/FinSim-sub001/internal/api"
	"github.com/techiepharm/FinSim-sub001/internal/app"
	"github.com/techiepharm/FinSim-sub001/internal/config"
	"github.com/techiepharm/FinSim-sub001/internal/metrics"
	"github.com/techiepharm/FinSim-sub001/internal/service"
	"github.com/techiepharm/FinSim-sub001/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Open store
	backend, err := app.OpenBackend(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Database.Backend, err)
	}
	defer backend.Close()

	log.Printf("Using %s store", backend.Name)

	// Simulated market
	market, err := app.NewMarket(ctx, cfg.Market, m)
	if err != nil {
		log.Fatalf("Failed to start market: %v", err)
	}
	if cfg.Market.RefreshSchedule != "" {
		scheduler, err := market.StartScheduler(cfg.Market.RefreshSchedule)
		if err != nil {
			log.Fatalf("Failed to schedule market refresh: %v", err)
		}
		defer scheduler.Stop()
	}

	// Advisory pipeline
	hub := advisory.NewHub(cfg.Trading.Currency, cfg.CORS.AllowedOrigins)
	dispatcher := app.NewDispatcher(cfg.Trading.Currency, hub, m)

	// Create services
	tradingService := service.NewTradingService(
		backend.Store,
		market,
		service.WithAdvisor(dispatcher),
		service.WithMetrics(m),
		service.WithStartingCash(cfg.Trading.StartingCash),
		service.WithPremiumPrice(cfg.Trading.PremiumPrice),
	)
	analyticsService := service.NewAnalyticsService(backend.Store, market, cfg.Policy, cfg.Trading.StartingCash, nil)

	// Create router
	router := api.NewRouter(api.Dependencies{
		System:    service.NewSystemService(backend.DB, backend.Dialect, backend.Name),
		Trading:   tradingService,
		Analytics: analyticsService,
		Market:    service.NewMarketService(market),
		Advisory:  hub,
		Metrics:   m,
		Gatherer:  reg,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting finsim %s on %s", version.Version, cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Deliver queued advisories before disconnecting subscribers.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Printf("Advisory queue not drained: %v", err)
	}
	hub.Close()

	log.Println("Server exited")
}
