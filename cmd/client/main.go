package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/iudanet/roomkeeper/internal/client/api"
	"github.com/iudanet/roomkeeper/internal/client/cli"
	"github.com/iudanet/roomkeeper/internal/client/reconcile"
	"github.com/iudanet/roomkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/roomkeeper/internal/rooms"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Registry URL")
	dbPath := flag.String("db", "roomkeeper-client.db", "Path to local cache")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	// Создаем контекст
	ctx := context.Background()

	// Логи CLI уходят в stderr, stdout остается для вывода команд
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// Открываем BoltDB кеш
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Создаем API клиент
	apiClient := api.NewClient(*serverURL)

	// Per-room locks общие для машины состояний и реконсиляции
	locks := rooms.NewLockTable()

	roomsService := rooms.NewService(boltStorage, cli.ContentStub{}, locks, logger)
	reconciler := reconcile.NewService(apiClient, boltStorage, boltStorage, locks, logger)

	// Выполняем команду
	cli.New(apiClient, boltStorage, roomsService, reconciler).Run(ctx, command, args[1:])
}

func printVersion() {
	fmt.Printf("RoomKeeper Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
