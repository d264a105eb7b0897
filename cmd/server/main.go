package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/overlordgame/overlord-server-go/internal/config"
	"github.com/overlordgame/overlord-server-go/internal/game"
	"github.com/overlordgame/overlord-server-go/internal/repository"
	"github.com/overlordgame/overlord-server-go/internal/server"
	"github.com/overlordgame/overlord-server-go/internal/transport"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting overlord server",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.String("transport", cfg.Server.Transport),
		zap.String("address", cfg.Server.Address),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	tp, err := openTransport(cfg.Server, logger)
	if err != nil {
		logger.Fatal("failed to open transport", zap.Error(err))
	}
	defer tp.Close()

	var store *repository.MatchStore
	if cfg.Database.DSN != "" {
		pool, dbErr := repository.NewPool(ctx, cfg.Database.DSN, logger)
		if dbErr != nil {
			logger.Fatal("failed to connect to database", zap.Error(dbErr))
		}
		store = repository.NewMatchStore(pool, logger)
		defer store.Close()
		if schemaErr := store.EnsureSchema(ctx); schemaErr != nil {
			logger.Fatal("failed to ensure database schema", zap.Error(schemaErr))
		}
		logger.Info("match persistence enabled")
	} else {
		logger.Info("no database configured; match results will not be recorded")
	}

	rules := game.Ruleset{
		StartHandSize:  cfg.Game.StartHandSize,
		MaxManaCap:     cfg.Game.MaxManaCap,
		ClearFacedowns: cfg.Game.ClearFacedowns,
	}
	match := server.NewMatchServer(server.Config{
		PollInterval:    cfg.Server.PollInterval,
		RetransmitEvery: cfg.Server.RetransmitEvery,
	}, tp, rules, store, logger)

	if err := match.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("match loop exited with error", zap.Error(err))
	}

	logger.Info("overlord server stopped")
}

func openTransport(cfg config.ServerConfig, logger *zap.Logger) (transport.Transport, error) {
	switch cfg.Transport {
	case "udp":
		return transport.ListenUDP(cfg.Address, logger)
	case "websocket":
		gw := transport.NewWSGateway(cfg.Address, logger)
		go func() {
			if err := gw.Start(); err != nil {
				logger.Error("websocket gateway error", zap.Error(err))
			}
		}()
		return gw, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
