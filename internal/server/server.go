package server

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"bookkeeping-gateway/internal/config"
	"bookkeeping-gateway/internal/delivery/http/router"
)

const shutdownTimeout = 10 * time.Second

var Module = fx.Module("server",
	fx.Invoke(NewServer),
)

func NewServer(
	lc fx.Lifecycle,
	cfg *config.Config,
	r *router.Router,
	logger *zap.Logger,
) error {
	app := r.Setup()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", cfg.App.Port)
			// bind here so a taken port fails startup instead of a goroutine
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", addr, err)
			}

			logger.Info("Starting HTTP server",
				zap.String("address", ln.Addr().String()),
				zap.String("env", cfg.App.Env),
				zap.String("bookkeeping_url", cfg.Bookkeeping.BaseURL),
				zap.Bool("cache_enabled", cfg.Cache.Enabled),
				zap.Duration("cache_ttl", cfg.Cache.TTL),
				zap.String("attachment_ready_path", filepath.Join(cfg.Attachment.BasePath, cfg.Attachment.ReadyFolder)),
			)

			go func() {
				if err := app.Listener(ln); err != nil {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down HTTP server")
			return app.ShutdownWithTimeout(shutdownTimeout)
		},
	})

	return nil
}
