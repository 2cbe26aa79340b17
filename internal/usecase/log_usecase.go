package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bookkeeping-gateway/internal/domain/entity"
	"bookkeeping-gateway/internal/domain/repository"
	"bookkeeping-gateway/internal/infrastructure/attachment"
)

// CreateLogInput is a log to create together with the files to attach to it
type CreateLogInput struct {
	Log *entity.CreateLog

	// Uploads are files received with the request
	Uploads []entity.FileUpload

	// ReadyFiles name files waiting in the attachment ready folder. They are
	// moved to the uploaded folder once the log exists.
	ReadyFiles []string
}

type LogUsecase interface {
	ListLogs(ctx context.Context, query entity.LogQuery) (*entity.ArrayOfLogsResponse, error)
	GetLog(ctx context.Context, id int64) (*entity.LogResponse, error)
	CreateLog(ctx context.Context, input *CreateLogInput) (*entity.LogResponse, error)
	// ListReadyAttachments returns the files that can be referenced by CreateLogInput.ReadyFiles
	ListReadyAttachments(ctx context.Context) ([]string, error)
}

type logUsecase struct {
	repo   repository.LogRepository
	store  attachment.Store
	logger *zap.Logger
}

func NewLogUsecase(repo repository.LogRepository, store attachment.Store, logger *zap.Logger) LogUsecase {
	return &logUsecase{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

func (u *logUsecase) ListLogs(ctx context.Context, query entity.LogQuery) (*entity.ArrayOfLogsResponse, error) {
	query = query.Normalize()

	u.logger.Info("Listing logs",
		zap.Int("page", query.Page),
		zap.Int("limit", query.Limit),
		zap.String("title", query.Title),
		zap.String("author", query.Author),
		zap.Strings("tags", query.Tags),
	)

	logs, err := u.repo.ListLogs(ctx, query)
	if err != nil {
		u.logger.Error("Failed to list logs", zap.Error(err))
		return nil, err
	}

	if err := logs.Validate(); err != nil {
		// the API is the source of truth, only report what looks off
		u.logger.Warn("Logs page does not satisfy the model constraints", zap.Error(err))
	}

	u.logger.Info("Successfully listed logs", zap.Int("count", len(logs.GetData())))
	return logs, nil
}

func (u *logUsecase) GetLog(ctx context.Context, id int64) (*entity.LogResponse, error) {
	if id <= 0 {
		verr := &entity.ValidationError{Issues: []entity.ValidationIssue{{Field: "id", Reason: "must be greater than 0"}}}
		return nil, verr
	}

	u.logger.Info("Getting log", zap.Int64("id", id))

	log, err := u.repo.GetLog(ctx, id)
	if err != nil {
		u.logger.Error("Failed to get log", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return log, nil
}

func (u *logUsecase) CreateLog(ctx context.Context, input *CreateLogInput) (*entity.LogResponse, error) {
	if input == nil || input.Log == nil {
		return nil, &entity.ValidationError{Issues: []entity.ValidationIssue{{Field: "log", Reason: "is required"}}}
	}
	if err := input.Log.Validate(); err != nil {
		return nil, err
	}

	files := make([]entity.FileUpload, 0, len(input.Uploads)+len(input.ReadyFiles))
	files = append(files, input.Uploads...)
	for _, name := range input.ReadyFiles {
		file, err := u.store.Load(name)
		if err != nil {
			u.logger.Error("Failed to load attachment", zap.String("filename", name), zap.Error(err))
			return nil, fmt.Errorf("failed to load attachment %s: %w", name, err)
		}
		files = append(files, *file)
	}

	u.logger.Info("Creating log",
		zap.String("title", input.Log.Title),
		zap.Int("attachments_count", len(files)),
	)

	created, err := u.repo.CreateLog(ctx, input.Log, files)
	if err != nil {
		u.logger.Error("Failed to create log", zap.Error(err))
		return nil, err
	}

	for _, name := range input.ReadyFiles {
		if err := u.store.MarkUploaded(name); err != nil {
			// the log exists already, the file stays in the ready folder
			u.logger.Warn("Failed to archive attachment",
				zap.String("filename", name),
				zap.Error(err),
			)
		}
	}

	if created.DataIsSet() {
		u.logger.Info("Successfully created log", zap.Int64("id", created.GetData().ID))
	}
	return created, nil
}

func (u *logUsecase) ListReadyAttachments(_ context.Context) ([]string, error) {
	names, err := u.store.ListReady()
	if err != nil {
		u.logger.Error("Failed to list ready attachments", zap.Error(err))
		return nil, err
	}
	return names, nil
}
