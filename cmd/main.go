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

	"github.com/Dosada05/league-tracker/brackets"
	"github.com/Dosada05/league-tracker/config"
	"github.com/Dosada05/league-tracker/handlers"
	api "github.com/Dosada05/league-tracker/routes"
	"github.com/Dosada05/league-tracker/services"
	"github.com/Dosada05/league-tracker/stores"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage", string(cfg.StorageBackend)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, closeStore, err := stores.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	wsHub := brackets.NewHub(logger)
	leagueService := services.NewLeagueService(store, brackets.NewRoundRobinGenerator(), wsHub, logger)
	leagueService.Load(ctx)

	leagueHandler := handlers.NewLeagueHandler(leagueService, logger)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, leagueService, cfg.AllowedOrigins, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, leagueHandler, webSocketHandler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return wsHub.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return shutdown(shutdownCtx, server, leagueService, logger)
	})

	return g.Wait()
}

// shutdown stops the server and then writes the league once more. The flush
// happens even when the server could not stop gracefully.
func shutdown(ctx context.Context, server *http.Server, leagueService services.LeagueService, logger *slog.Logger) error {
	shutdownErr := server.Shutdown(ctx)
	if shutdownErr != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", shutdownErr))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("failed to force close server", slog.Any("error", closeErr))
		}
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := leagueService.Flush(flushCtx); err != nil {
		logger.Error("failed to flush league on shutdown", slog.Any("error", err))
	}

	if shutdownErr != nil {
		return shutdownErr
	}
	logger.Info("server shutdown complete")
	return nil
}
