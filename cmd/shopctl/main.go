// Command shopctl runs product maintenance tasks against the shop database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/config"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/repository"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/service"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/store"
	"github.com/Lixing-Zhang/shop-admin/backend/pkg/logger"
	flag "github.com/spf13/pflag"
)

func main() {
	flag.CommandLine.SetInterspersed(false)
	configDir := flag.String("config", ".", "directory containing config.yaml")
	flag.Usage = func() { printUsage(os.Stderr) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	var cmd *command
	for _, c := range commands() {
		if c.name() == args[0] {
			cmd = c
			break
		}
	}
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", args[0])
		printUsage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := store.NewConnection(ctx, cfg.Mongo.Store())
	if err != nil {
		log.Error("failed to connect", "error", err)
		os.Exit(1)
	}

	products := service.NewProductService(repository.NewMongoProductRepository(conn.Products()))
	runErr := cmd.run(ctx, products, os.Stdout, args[1:])

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := conn.Close(closeCtx); err != nil {
		log.Warn("failed to close database connection", "error", err)
	}
	cancel()
	stop()

	if runErr != nil {
		fmt.Fprintln(os.Stderr, "error:", runErr)
		os.Exit(1)
	}
}
