package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/config"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/handlers"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/repository"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/service"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/store"
	"github.com/Lixing-Zhang/shop-admin/backend/pkg/logger"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func main() {
	configDir := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	// Load configuration from file and environment
	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting shop admin api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"database", cfg.Mongo.Database,
		"log_level", cfg.LogLevel,
	)

	conn, err := store.NewConnection(ctx, cfg.Mongo.Store())
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := conn.Close(closeCtx); err != nil {
			log.Error("failed to close database connection", "error", err)
		}
	}()

	if err := conn.EnsureIndexes(ctx); err != nil {
		return err
	}
	log.Info("connected to mongodb", "database", cfg.Mongo.Database)

	// Initialize repositories
	productRepo := repository.NewMongoProductRepository(conn.Products())
	recordRepo := repository.NewMongoRecordRepository(conn.Records())

	// Initialize services
	productService := service.NewProductService(productRepo)
	recordService := service.NewRecordService(recordRepo)

	// Initialize handlers
	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Health:         handlers.NewHealthHandler(conn, log),
		Products:       handlers.NewProductHandler(productService, log, int64(cfg.Import.MaxUploadMB)<<20),
		Records:        handlers.NewRecordHandler(recordService, log),
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
