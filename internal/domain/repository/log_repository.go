package repository

import (
	"context"

	"bookkeeping-gateway/internal/domain/entity"
)

type LogRepository interface {
	ListLogs(ctx context.Context, query entity.LogQuery) (*entity.ArrayOfLogsResponse, error)
	GetLog(ctx context.Context, id int64) (*entity.LogResponse, error)
	// CreateLog posts a new log. With attachments the body is sent as multipart/form-data.
	CreateLog(ctx context.Context, req *entity.CreateLog, attachments []entity.FileUpload) (*entity.LogResponse, error)
}
