package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dosada05/league-tracker/brackets"
	"github.com/Dosada05/league-tracker/config"
	"github.com/Dosada05/league-tracker/mcpserver"
	"github.com/Dosada05/league-tracker/services"
	"github.com/Dosada05/league-tracker/stores"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// stdout carries the protocol, logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := stores.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	leagueService := services.NewLeagueService(store, brackets.NewRoundRobinGenerator(), nil, logger)
	leagueService.Load(ctx)

	server := mcpserver.NewServer(leagueService)
	logger.Info("MCP server listening on stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("MCP server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	if err := leagueService.Flush(context.Background()); err != nil {
		logger.Error("failed to flush league", slog.Any("error", err))
	}
}
