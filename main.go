package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"shuttle-app/internal/config"
	"shuttle-app/internal/logging"
	"shuttle-app/internal/rotation"
	"shuttle-app/internal/store"
	"shuttle-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	appStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("store", zap.Error(err))
	}

	generator := rotation.NewGenerator(
		rotation.WithLogger(logger.Named("rotation")),
		rotation.WithAttemptFactor(cfg.AttemptFactor),
	)
	server := web.NewServer(appStore, generator, logger.Named("web"))

	r := chi.NewRouter()
	r.Mount("/", server.Routes())

	if cfg.OnLambda() {
		logger.Info("starting in lambda mode", zap.String("function", cfg.LambdaFunctionName))
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server", zap.Error(err))
	}
}

func openStore(cfg config.Config, logger *zap.Logger) (store.Store, error) {
	switch {
	case cfg.PostgresDSN != "":
		logger.Info("using postgres store")
		pgStore, err := store.NewPostgresStore(cfg.PostgresDSN, store.PostgresOptions{
			MigrationsDir: cfg.PostgresMigrationsDir,
		})
		if err != nil {
			return nil, fmt.Errorf("postgres store: %w", err)
		}
		return pgStore, nil
	case cfg.DBPath != "":
		logger.Info("using sqlite store", zap.String("path", cfg.DBPath))
		sqliteStore, err := store.NewSQLiteStore(cfg.DBPath, store.SQLiteOptions{
			MigrationsDir: cfg.DBMigrationsDir,
		})
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		return sqliteStore, nil
	default:
		logger.Warn("no database configured, sessions are kept in memory")
		return store.NewMemoryStore(), nil
	}
}
