package repository

import (
	"context"

	"bookkeeping-gateway/internal/domain/entity"
)

type APICallRepository interface {
	Save(ctx context.Context, call *entity.APICall) error
	FindAll(ctx context.Context, limit int) ([]entity.APICall, error)
	FindByCorrelationID(ctx context.Context, correlationID string) (*entity.APICall, error)
}
