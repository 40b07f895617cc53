package main

import (
	"context"
	"errors"
	"flag"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/config"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/environment"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/http"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/logger"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "config file, defaults to ./data/config.yaml")
)

func main() {
	flag.Parse()

	cfg, err := config.ReadConfig(*configFile)
	if err != nil {
		panic(err)
	}
	logger, err := logger.NewWithLevel(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	ds, err := environment.Load(ctx, cfg.EnvironmentFiles(), logger)
	if err != nil {
		logger.Fatal("loading environmental data failed", zap.Error(err))
	}
	provider := environment.NewGridProvider(ds)
	logger.Info("environmental data ready", zap.Stringer("dataset", ds))

	constraintsList, err := config.BuildConstraintsList(cfg, provider, logger)
	if err != nil {
		logger.Fatal("building constraints failed", zap.Error(err))
	}
	constraintsList.PrintSettings()

	constraintService := usecases.NewConstraintService(logger, constraintsList)

	api := http.NewServer(logger).Use(ctx, cfg.Server, constraintService)

	signal := http.GracefulShutdown()
	logger.Info("Constraint Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
