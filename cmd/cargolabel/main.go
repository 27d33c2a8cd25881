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

	"github.com/rookgm/cargolabel/config"
	"github.com/rookgm/cargolabel/internal/auth"
	"github.com/rookgm/cargolabel/internal/carrier"
	"github.com/rookgm/cargolabel/internal/events"
	"github.com/rookgm/cargolabel/internal/handler"
	httphandler "github.com/rookgm/cargolabel/internal/handler/http"
	"github.com/rookgm/cargolabel/internal/logger"
	"github.com/rookgm/cargolabel/internal/repository"
	"github.com/rookgm/cargolabel/internal/repository/postgres"
	"github.com/rookgm/cargolabel/internal/service"
	"github.com/rookgm/cargolabel/internal/worker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	// create context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	token := auth.NewAuthToken(cfg.AuthTokenKey)
	broker := events.NewBroker()

	// dependency injection
	// repositories
	operatorRepo := repository.NewOperatorRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)

	// carrier, one request per delay
	carrierClient := carrier.NewClient(cfg.CarrierAddr, cfg.CarrierAPIKey)
	limiter := rate.NewLimiter(rate.Every(cfg.CarrierRequestDelay), 1)

	// services
	pricer := service.NewPricer(balanceRepo)
	operatorService := service.NewOperatorService(operatorRepo, token)
	labelService := service.NewLabelService(orderRepo, labelRepo, balanceRepo, balanceRepo, pricer,
		carrierClient, limiter, cfg.CarrierName, service.WithNotifier(broker))
	orderService := service.NewOrderService(orderRepo, balanceRepo, balanceRepo, pricer)
	balanceService := service.NewBalanceService(balanceRepo, labelRepo)
	reconcileService := service.NewReconcileService(labelRepo)

	router := handler.NewRouter(handler.Handlers{
		User:    httphandler.NewUserHandler(operatorService),
		Label:   httphandler.NewLabelHandler(labelService),
		Order:   httphandler.NewOrderHandler(orderService),
		Balance: httphandler.NewBalanceHandler(balanceService),
		Events:  httphandler.NewEventsHandler(broker),
	}, token, logger.Log)

	// reconciliation worker
	go worker.NewReconciliation(reconcileService, cfg.ReconcileInterval).Run(ctx)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Error shutting down server", zap.Error(err))
		}
	}()

	logger.Log.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}

	logger.Log.Info("Server stopped")
}
