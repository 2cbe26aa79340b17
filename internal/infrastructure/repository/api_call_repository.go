package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bookkeeping-gateway/internal/domain/entity"
	"bookkeeping-gateway/internal/domain/repository"
	"bookkeeping-gateway/internal/infrastructure/database"
)

const apiCallColumns = `id, correlation_id, endpoint, method, request_body, response_body, status_code, duration_ms, created_at`

type apiCallRepository struct {
	db     *database.Database
	logger *zap.Logger
}

func NewAPICallRepository(db *database.Database, logger *zap.Logger) repository.APICallRepository {
	return &apiCallRepository{
		db:     db,
		logger: logger,
	}
}

// Save stores an API call record
func (r *apiCallRepository) Save(ctx context.Context, call *entity.APICall) error {
	query := `
		INSERT INTO api_calls (correlation_id, endpoint, method, request_body, response_body, status_code, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.DB.QueryRowContext(ctx, query,
		call.CorrelationID,
		call.Endpoint,
		call.Method,
		call.RequestBody,
		call.ResponseBody,
		call.StatusCode,
		call.Duration,
		call.CreatedAt,
	).Scan(&call.ID)

	if err != nil {
		r.logger.Error("Failed to save API call",
			zap.String("endpoint", call.Endpoint),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save API call: %w", err)
	}

	return nil
}

// FindAll returns the most recent calls first
func (r *apiCallRepository) FindAll(ctx context.Context, limit int) ([]entity.APICall, error) {
	query := `SELECT ` + apiCallColumns + ` FROM api_calls ORDER BY created_at DESC, id DESC LIMIT $1`

	rows, err := r.db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query API calls: %w", err)
	}
	defer rows.Close()

	calls := []entity.APICall{}
	for rows.Next() {
		call, err := scanAPICall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, *call)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate API calls: %w", err)
	}

	return calls, nil
}

func (r *apiCallRepository) FindByCorrelationID(ctx context.Context, correlationID string) (*entity.APICall, error) {
	query := `SELECT ` + apiCallColumns + ` FROM api_calls WHERE correlation_id = $1`

	call, err := scanAPICall(r.db.DB.QueryRowContext(ctx, query, correlationID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Not found, return nil without error
	}
	return call, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAPICall(s scanner) (*entity.APICall, error) {
	var call entity.APICall
	err := s.Scan(
		&call.ID,
		&call.CorrelationID,
		&call.Endpoint,
		&call.Method,
		&call.RequestBody,
		&call.ResponseBody,
		&call.StatusCode,
		&call.Duration,
		&call.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan API call: %w", err)
	}
	return &call, nil
}
