package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/creativemarketingpro/backend/internal/config"
	"github.com/creativemarketingpro/backend/internal/handler"
	"github.com/creativemarketingpro/backend/internal/logging"
	"github.com/creativemarketingpro/backend/internal/repository"
	"github.com/creativemarketingpro/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logging.Fatal("failed to open message store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeStore()

	h := handler.New(store, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(service.NewContactService(store))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.Routes(h, contactHandler),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

// openStore constructs the message store selected by STORE_DRIVER. The
// returned func releases it on shutdown.
func openStore(ctx context.Context, cfg *config.Config) (repository.ContactRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPgContactRepository(pool), pool.Close, nil

	case config.DriverSqlite:
		repo, err := repository.OpenSqliteContactRepository(ctx, cfg.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil

	case config.DriverDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, err
		}
		repo, err := repository.NewDynamoContactRepository(awsdynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil

	default:
		repo := repository.NewMemoryContactRepository()
		return repo, func() { _ = repo.Close() }, nil
	}
}
