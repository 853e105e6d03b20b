package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"threadloop/config"
	"threadloop/core"
	"threadloop/observability/logging"
	"threadloop/rpc"
	"threadloop/storage"
)

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("THREADLOOP_ENV"))
	logger := logging.Setup("threadloopd", env)

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to open database: %v", err))
	}
	defer db.Close()

	admin, err := cfg.Admin()
	if err != nil {
		logger.Error("Failed to decode admin address", slog.Any("error", err))
		os.Exit(1)
	}

	node, err := core.NewNode(db, admin, logger)
	if err != nil {
		logger.Error("Failed to initialise node", slog.Any("error", err))
		os.Exit(1)
	}
	node.EnableMetrics()

	logger.Info("node ready",
		slog.String("network", cfg.NetworkName),
		slog.String("admin", cfg.AdminAddress),
		slog.Uint64("height", node.Height()),
	)

	server := rpc.NewServer(node, logger)
	if err := server.Start(cfg.RPCAddress); err != nil {
		logger.Error("JSON-RPC server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
