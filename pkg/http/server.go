package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/navigatorx-constraints/pkg/config"
	http_router "github.com/lintang-b-s/navigatorx-constraints/pkg/http/router"
	"github.com/lintang-b-s/navigatorx-constraints/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/navigatorx-constraints/pkg/http/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the API in the background. Wait returns once it stopped.
func (s *Server) Use(
	ctx context.Context,
	cfg config.ServerConfig,
	constraintService controllers.ConstraintService,
) *Server {
	serverConfig := http_server.Config{
		Port:    cfg.Port,
		Timeout: cfg.Timeout,
	}
	rateLimit := http_router.RateLimit{
		Enabled: cfg.RateLimit,
		RPS:     cfg.RPS,
		Burst:   cfg.Burst,
	}

	api := http_router.NewAPI(s.Log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(ctx, serverConfig, constraintService, rateLimit)
	})
	s.g = g
	return s
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}

func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
