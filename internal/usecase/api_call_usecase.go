package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bookkeeping-gateway/internal/domain/entity"
	"bookkeeping-gateway/internal/domain/repository"
)

const (
	defaultAPICallLimit = 50
	maxAPICallLimit     = 200
)

// ErrAPICallNotFound is returned when no call carries the requested correlation ID
var ErrAPICallNotFound = errors.New("API call not found")

// APICallUsecase exposes the calls made to Bookkeeping
type APICallUsecase interface {
	ListAPICalls(ctx context.Context, limit int) ([]entity.APICall, error)
	GetAPICall(ctx context.Context, correlationID string) (*entity.APICall, error)
}

type apiCallUsecase struct {
	repo   repository.APICallRepository
	logger *zap.Logger
}

func NewAPICallUsecase(repo repository.APICallRepository, logger *zap.Logger) APICallUsecase {
	return &apiCallUsecase{
		repo:   repo,
		logger: logger,
	}
}

func (u *apiCallUsecase) ListAPICalls(ctx context.Context, limit int) ([]entity.APICall, error) {
	if limit <= 0 {
		limit = defaultAPICallLimit
	}
	if limit > maxAPICallLimit {
		limit = maxAPICallLimit
	}

	calls, err := u.repo.FindAll(ctx, limit)
	if err != nil {
		u.logger.Error("Failed to list API calls", zap.Error(err))
		return nil, err
	}
	return calls, nil
}

func (u *apiCallUsecase) GetAPICall(ctx context.Context, correlationID string) (*entity.APICall, error) {
	call, err := u.repo.FindByCorrelationID(ctx, correlationID)
	if err != nil {
		u.logger.Error("Failed to get API call",
			zap.String("correlation_id", correlationID),
			zap.Error(err),
		)
		return nil, err
	}
	if call == nil {
		return nil, ErrAPICallNotFound
	}
	return call, nil
}
