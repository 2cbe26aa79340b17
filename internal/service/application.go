package service

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"bookkeeping-gateway/internal/config"
	deliveryhttp "bookkeeping-gateway/internal/delivery/http"
	"bookkeeping-gateway/internal/infrastructure/attachment"
	"bookkeeping-gateway/internal/infrastructure/database"
	"bookkeeping-gateway/internal/infrastructure/httpclient"
	"bookkeeping-gateway/internal/infrastructure/logger"
	"bookkeeping-gateway/internal/infrastructure/redis"
	"bookkeeping-gateway/internal/infrastructure/repository"
	"bookkeeping-gateway/internal/server"
	"bookkeeping-gateway/internal/usecase"
)

// Modules is the complete gateway: every package module plus the HTTP server
func Modules() fx.Option {
	return fx.Options(
		// Configuration
		config.Module,

		// Infrastructure
		logger.Module,
		database.Module,
		redis.Module,
		attachment.Module,
		httpclient.Module,
		repository.Module,

		// Business Logic
		usecase.Module,

		// Delivery
		deliveryhttp.Module,

		// Server
		server.Module,

		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
	)
}

// Application wraps the fx.App for service management
type Application struct {
	app      *fx.App
	ctx      context.Context
	cancel   context.CancelFunc
	doneChan chan struct{}
}

// NewApplication creates a new Application instance
func NewApplication() *Application {
	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		ctx:      ctx,
		cancel:   cancel,
		doneChan: make(chan struct{}),
	}
}

// Run starts the application and blocks until a signal arrives or Shutdown is called
func (a *Application) Run() {
	defer close(a.doneChan)

	a.app = fx.New(
		fx.Provide(func() context.Context { return a.ctx }),
		Modules(),
	)

	if err := a.app.Start(a.ctx); err != nil {
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		a.Shutdown()
	case <-a.ctx.Done():
	}
}

// Shutdown gracefully shuts down the application
func (a *Application) Shutdown() {
	a.cancel()
	if a.app != nil {
		ctx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
		defer cancel()
		_ = a.app.Stop(ctx)
	}
}

// Wait blocks until the application exits
func (a *Application) Wait() {
	<-a.doneChan
}
