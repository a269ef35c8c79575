package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	envconfig "github.com/hirosato/go-bank-client/internal/common/config"
	"github.com/hirosato/go-bank-client/internal/domain/account"
	"github.com/hirosato/go-bank-client/internal/domain/customer"
	"github.com/hirosato/go-bank-client/internal/domain/movement"
	"github.com/hirosato/go-bank-client/internal/platform/auth"
	"github.com/hirosato/go-bank-client/internal/platform/rest"
)

func main() {
	// A missing .env is fine, the process environment is used as is
	_ = godotenv.Load()

	config, err := envconfig.LoadFromEnv()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// The terminal owns stdout, logs go to stderr
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(logger)

	zapLogger, err := newZapLogger(config)
	if err != nil {
		logger.Error("Failed to initialize transport logger", "error", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	// Initialize backend client and repositories
	verifier := auth.NewTokenVerifier(config, logger)
	client := rest.NewClient(config, verifier, zapLogger)
	repos := rest.NewFactory(client)

	// Initialize services
	customerService := customer.NewService(repos.CustomerRepository(), logger)
	accountService := account.NewService(repos.AccountRepository(), logger)
	ledger := movement.NewLedger(repos.MovementRepository(), accountService, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sh := newShell(os.Stdin, os.Stdout, customerService, accountService, ledger, client, logger)
	if err := sh.run(ctx); err != nil {
		logger.Error("Shell stopped", "error", err)
		os.Exit(1)
	}
}

func newZapLogger(config *envconfig.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if config.IsProd() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.Level = zap.NewAtomicLevelAt(zapLevel(config.LogLevel))
	return zcfg.Build()
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level <= slog.LevelDebug:
		return zapcore.DebugLevel
	case level <= slog.LevelInfo:
		return zapcore.InfoLevel
	case level <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
