package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"bookkeeping-gateway/internal/config"
	"bookkeeping-gateway/internal/domain/entity"
	"bookkeeping-gateway/internal/infrastructure/database"
	"bookkeeping-gateway/internal/infrastructure/redis"
	"bookkeeping-gateway/internal/version"
)

const healthCheckTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks       map[string]pinger
	cacheEnabled bool
	logger       *zap.Logger
}

// NewHealthHandler checks the database and Redis on every call. A nil
// dependency is left out of the report.
func NewHealthHandler(cfg *config.Config, db *database.Database, redisClient *redis.RedisClient, logger *zap.Logger) *HealthHandler {
	checks := make(map[string]pinger)
	if db != nil {
		checks["database"] = db
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}
	return &HealthHandler{
		checks:       checks,
		cacheEnabled: cfg.Cache.Enabled,
		logger:       logger,
	}
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Version      string            `json:"version"`
	CacheEnabled bool              `json:"cache_enabled"`
	Components   map[string]string `json:"components,omitempty"`
}

// Health godoc
// @Summary Health check
// @Description Report the service version and the state of the database and Redis
// @Tags health
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 503 {object} entity.APIResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now(),
		Version:      version.Version,
		CacheEnabled: h.cacheEnabled,
		Components:   make(map[string]string, len(h.checks)),
	}
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("component", name), zap.Error(err))
			resp.Components[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Components[name] = "up"
	}

	if resp.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(entity.NewSuccessResponse(resp, "Service is degraded"))
	}
	return c.JSON(entity.NewSuccessResponse(resp, "Service is healthy"))
}
