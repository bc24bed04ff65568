package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"paytrack/internal/auth"
	"paytrack/internal/backend"
	"paytrack/internal/config"
	"paytrack/internal/events"
	"paytrack/internal/http"
	"paytrack/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := backend.New(ctx, backend.Config{
		Type:            backend.Type(cfg.DataBackend),
		SQLiteDBPath:    cfg.SQLiteDBPath,
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
		Timeout:         cfg.SheetsTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize backend: %w", err)
	}
	if be.Cleanup != nil {
		defer func() {
			if err := be.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	st := store.New(be.API, cfg.UsersSheetName, cfg.TransactionsSheetName)
	if err := st.EnsureHeaders(ctx); err != nil {
		return fmt.Errorf("ensure table headers: %w", err)
	}

	var recorder *events.Recorder
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Audit events are best-effort; the API starts without them.
			logger.Warn("AMQP unavailable, audit events disabled", "error", err)
		} else {
			defer client.Close()
			recorder = events.NewRecorder(client)
			logger.Info("Audit events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	srv := http.NewServer(http.Options{
		Addr:              ":" + cfg.Port,
		Store:             st,
		Tokens:            auth.NewManager(cfg.JWTSecret, cfg.JWTExpiry),
		Recorder:          recorder,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Logger:            logger,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
