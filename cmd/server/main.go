package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/skinledger/internal/config"
	"github.com/mamadbah2/skinledger/internal/repository/mongodb"
	"github.com/mamadbah2/skinledger/internal/scheduler"
	"github.com/mamadbah2/skinledger/internal/server/handlers"
	"github.com/mamadbah2/skinledger/internal/server/router"
	ledgersvc "github.com/mamadbah2/skinledger/internal/service/ledger"
	pricingsvc "github.com/mamadbah2/skinledger/internal/service/pricing"
	"github.com/mamadbah2/skinledger/pkg/clients/steammarket"
	"github.com/mamadbah2/skinledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	ledgerSvc := ledgersvc.NewService(mongoRepo, baseLogger.Named("svc.ledger"))
	if err := ledgerSvc.Load(context.Background()); err != nil {
		baseLogger.Fatal("failed to load ledger from mongodb", zap.Error(err))
	}

	steamClient := steammarket.NewClient(cfg.Steam)
	pricingSvc := pricingsvc.NewService(ledgerSvc, steamClient, mongoRepo, cfg.Pricing.RequestDelay, baseLogger.Named("svc.pricing"))

	ledgerHandler := handlers.NewLedgerHandler(ledgerSvc, pricingSvc, baseLogger.Named("handlers.ledger"))
	engine := router.New(ledgerHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(*cfg, pricingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
