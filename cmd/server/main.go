package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/MINGSHENG1998/ryt-bank-payment/internal/api"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/authn"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/config"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/contacts"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/data/kvledger"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/domain/balance"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/logger"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/platform/persistence"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/service"
	"github.com/MINGSHENG1998/ryt-bank-payment/internal/settlement"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize the ledger blob store for the configured backend
	var (
		kv      persistence.KVStore
		redisKV *persistence.RedisKV
		mongoKV *persistence.MongoKV
	)
	switch cfg.Ledger.Backend {
	case config.LedgerBackendRedis:
		redisKV, err = persistence.NewRedisKV(appCtx, log, &cfg.Redis)
		if err != nil {
			log.Error("Failed to initialize Redis", "error", err)
			os.Exit(1)
		}
		kv = redisKV
	case config.LedgerBackendMongo:
		mongoKV, err = persistence.NewMongoKV(appCtx, log, &cfg.MongoDB)
		if err != nil {
			log.Error("Failed to initialize MongoDB", "error", err)
			os.Exit(1)
		}
		kv = mongoKV
	default:
		kv = persistence.NewMemoryKV()
	}
	log.Info("Ledger storage initialized", "backend", cfg.Ledger.Backend)

	// Initialize repositories and stores
	ledgerRepo := kvledger.NewLedgerRepository(log, kv, cfg.Ledger.MaxEntries)
	balanceStore := balance.NewStore(cfg.Account.SeedBalance)
	balanceStore.Subscribe(func(b decimal.Decimal) {
		log.Info("Balance updated", "balance", b.String())
	})

	// Initialize services
	escalator := authn.NewEscalator(log, authn.NewSimulatedBiometric(), cfg.Auth.MinPINLength)
	processor := settlement.NewProcessor(log, ledgerRepo, cfg.Settlement.Latency, cfg.Settlement.FailureRate)
	transferService := service.NewTransferService(log, balanceStore, escalator, processor)
	serializedService, err := service.NewSerializedTransferService(transferService, log)
	if err != nil {
		log.Error("Failed to initialize transfer worker", "error", err)
		os.Exit(1)
	}

	contactSource := contacts.NewStaticSource(log, []contacts.Contact{
		{ID: "1", Name: "Alice Tan"},
		{ID: "2", Name: "Bob Lim"},
		{ID: "3", Name: "Siti Rahman"},
	})

	// Initialize REST server
	server := api.NewServer(log, cfg, serializedService, ledgerRepo, balanceStore, contactSource)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	serializedService.Shutdown()

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if redisKV != nil {
		if err = redisKV.Close(); err != nil {
			log.Error("Error closing Redis connection", "error", err)
		}
	}
	if mongoKV != nil {
		if err = mongoKV.Close(shutdownCtx); err != nil {
			log.Error("Error closing MongoDB connection", "error", err)
		}
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
