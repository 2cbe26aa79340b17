package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"bookkeeping-gateway/internal/config"
	"bookkeeping-gateway/internal/domain/entity"
	"bookkeeping-gateway/internal/domain/repository"
	"bookkeeping-gateway/internal/infrastructure/httpclient"
	"bookkeeping-gateway/internal/infrastructure/redis"
)

const (
	logsCachePrefix = "bookkeeping:logs:"
	logsPath        = "/logs"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type logRepository struct {
	config      *config.Config
	client      httpclient.HTTPClient
	redisClient *redis.RedisClient
	logger      *zap.Logger
}

func NewLogRepository(cfg *config.Config, client httpclient.HTTPClient, redisClient *redis.RedisClient, logger *zap.Logger) repository.LogRepository {
	return &logRepository{
		config:      cfg,
		client:      client,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (r *logRepository) cacheEnabled() bool {
	return r.config.Cache.Enabled && r.redisClient != nil
}

func cacheKey(query entity.LogQuery) string {
	return logsCachePrefix + query.Values().Encode()
}

// getCached returns the cached page or nil on any miss or failure
func (r *logRepository) getCached(ctx context.Context, key string) *entity.ArrayOfLogsResponse {
	cached, err := r.redisClient.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.ErrNil) {
			r.logger.Warn("Failed to read logs from cache", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var response entity.ArrayOfLogsResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		r.logger.Warn("Discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &response
}

func (r *logRepository) ListLogs(ctx context.Context, query entity.LogQuery) (*entity.ArrayOfLogsResponse, error) {
	key := cacheKey(query)
	if r.cacheEnabled() {
		if cached := r.getCached(ctx, key); cached != nil {
			r.logger.Debug("Logs served from cache", zap.String("key", key))
			return cached, nil
		}
	}

	var response entity.ArrayOfLogsResponse
	if err := r.client.Get(ctx, logsPath, query.Values(), &response); err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	if r.cacheEnabled() {
		payload, err := json.Marshal(response)
		if err == nil {
			err = r.redisClient.Set(ctx, key, string(payload), r.config.Cache.TTL)
		}
		if err != nil {
			r.logger.Warn("Failed to cache logs", zap.String("key", key), zap.Error(err))
		}
	}

	return &response, nil
}

func (r *logRepository) GetLog(ctx context.Context, id int64) (*entity.LogResponse, error) {
	var response entity.LogResponse
	if err := r.client.Get(ctx, logsPath+"/"+strconv.FormatInt(id, 10), nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get log %d: %w", id, err)
	}
	return &response, nil
}

func (r *logRepository) CreateLog(ctx context.Context, req *entity.CreateLog, attachments []entity.FileUpload) (*entity.LogResponse, error) {
	var response entity.LogResponse

	if len(attachments) == 0 {
		if err := r.client.Post(ctx, logsPath, req, &response); err != nil {
			return nil, fmt.Errorf("failed to create log: %w", err)
		}
	} else {
		form := entity.NewMultipartForm()
		if err := req.ToMultipart(form, ""); err != nil {
			return nil, fmt.Errorf("failed to encode log: %w", err)
		}
		for _, file := range attachments {
			form.Append(entity.HTTPContent{
				Name:        "attachments",
				FileName:    file.Filename,
				ContentType: file.ContentType,
				Data:        file.Content,
			})
		}
		if err := r.client.PostMultipart(ctx, logsPath, form, &response); err != nil {
			return nil, fmt.Errorf("failed to create log: %w", err)
		}
	}

	// A new log shifts every cached page
	if r.cacheEnabled() {
		if err := r.redisClient.DelPattern(ctx, logsCachePrefix+"*"); err != nil {
			r.logger.Warn("Failed to invalidate logs cache", zap.Error(err))
		}
	}

	return &response, nil
}
