package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/roomkeeper/internal/capability"
	"github.com/iudanet/roomkeeper/internal/server"
	"github.com/iudanet/roomkeeper/internal/server/handlers"
	"github.com/iudanet/roomkeeper/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const accessTokenTTL = 24 * time.Hour

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", envOrDefault("ROOMKEEPER_ADDR", ":8080"), "HTTP listen address")
	dbPath := flag.String("db", envOrDefault("ROOMKEEPER_DB", "roomkeeper.db"), "Path to SQLite database")
	logLevel := flag.String("log-level", envOrDefault("ROOMKEEPER_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := newLogger(*logLevel)

	if err := run(logger, *addr, *dbPath); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath string) error {
	// Секреты только через окружение, не через флаги
	masterSecret := os.Getenv("ROOMKEEPER_MASTER_SECRET")
	if masterSecret == "" {
		return fmt.Errorf("ROOMKEEPER_MASTER_SECRET environment variable is required")
	}

	jwtSecret := os.Getenv("ROOMKEEPER_JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("ROOMKEEPER_JWT_SECRET environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Открываем SQLite storage (миграции применяются при старте)
	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Ключ подписи capability-токенов выводим из master-секрета
	signingKey, err := capability.DeriveSigningKey([]byte(masterSecret))
	if err != nil {
		return fmt.Errorf("failed to derive signing key: %w", err)
	}

	capSvc := capability.NewService(
		capability.NewCodec(signingKey),
		handlers.ShareStoreAdapter{Store: store},
		logger,
	)

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(jwtSecret),
		AccessTokenTTL: accessTokenTTL,
	}

	srv := server.New(
		server.Config{Addr: addr, JWTConfig: jwtConfig},
		server.Handlers{
			Rooms:      handlers.NewRoomsHandler(logger, store),
			Shares:     handlers.NewSharesHandler(logger, store, store, capSvc),
			Capability: handlers.NewCapabilityHandler(logger, capSvc),
			Health:     handlers.NewHealthHandler(logger, store, Version),
		},
		logger,
	)

	logger.Info("RoomKeeper Server starting", "version", Version, "addr", addr, "db", dbPath)

	return srv.Run(ctx)
}

// newLogger создает slog logger с уровнем из конфигурации
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// envOrDefault возвращает значение переменной окружения или default
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func printVersion() {
	fmt.Printf("RoomKeeper Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
