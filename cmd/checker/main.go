package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/config"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/environment"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/logger"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "config file, defaults to ./data/config.yaml")
	route      = flag.String("route", "", "route waypoints as an encoded polyline")
	at         = flag.String("time", "", "RFC3339 time the route is checked at, defaults to now")
)

// one shot route check against the configured constraints. exit code 1 when a leg is
// violated, 2 when the check could not run.
func main() {
	flag.Parse()

	cfg, err := config.ReadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := logger.NewWithLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("route check aborted", zap.Error(err))
		_ = logger.Sync()
		os.Exit(2)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	t := time.Now().UTC()
	if *at != "" {
		var err error
		t, err = time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("invalid -time: %w", err)
		}
	}

	ds, err := environment.Load(context.Background(), cfg.EnvironmentFiles(), logger)
	if err != nil {
		return err
	}

	constraintsList, err := config.BuildConstraintsList(cfg, ds, logger)
	if err != nil {
		return err
	}
	constraintsList.PrintSettings()

	service := usecases.NewConstraintService(logger, constraintsList)
	verdict, err := service.CheckRoute(*route, t)
	if err != nil {
		return err
	}

	for i, leg := range verdict.Legs {
		fmt.Printf("leg %d: (%.5f,%.5f) -> (%.5f,%.5f) %.2f km violated=%t\n", i,
			leg.From.Lat, leg.From.Lon, leg.To.Lat, leg.To.Lon, leg.DistanceKm, leg.Violated)
	}
	for _, msg := range verdict.Messages {
		fmt.Println(msg)
	}
	_ = logger.Sync()
	if !verdict.Safe {
		os.Exit(1)
	}
	return nil
}
