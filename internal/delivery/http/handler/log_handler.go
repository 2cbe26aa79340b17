package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"bookkeeping-gateway/internal/domain/entity"
	"bookkeeping-gateway/internal/usecase"
)

const (
	// multipart field prefix of the log members
	logFormPrefix = "log"
	// multipart field carrying uploaded files
	attachmentsField = "attachments"
	// names of files to take from the attachment ready folder
	readyAttachmentsField = "readyAttachments"
)

type LogHandler struct {
	usecase usecase.LogUsecase
	logger  *zap.Logger
}

func NewLogHandler(usecase usecase.LogUsecase, logger *zap.Logger) *LogHandler {
	return &LogHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// CreateLogRequest is the JSON body of POST /api/v1/logs
type CreateLogRequest struct {
	entity.CreateLog
	ReadyAttachments []string `json:"readyAttachments,omitempty"`
}

// ListLogs godoc
// @Summary List logs
// @Description Get one page of Bookkeeping logs, newest first
// @Tags logs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param title query string false "Title filter"
// @Param author query string false "Author filter"
// @Param tags query string false "Comma separated tags, all must match"
// @Success 200 {object} entity.APIResponse
// @Failure 502 {object} entity.APIResponse
// @Router /api/v1/logs [get]
func (h *LogHandler) ListLogs(c *fiber.Ctx) error {
	query := entity.LogQuery{
		Page:   c.QueryInt("page", entity.DefaultLogPage),
		Limit:  c.QueryInt("limit", entity.DefaultLogLimit),
		Title:  c.Query("title"),
		Author: c.Query("author"),
		Tags:   splitCSV(c.Query("tags")),
	}

	logs, err := h.usecase.ListLogs(c.UserContext(), query)
	if err != nil {
		h.logger.Error("Failed to list logs", zap.Error(err))
		return sendError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(logs, "Logs retrieved successfully"))
}

// GetLog godoc
// @Summary Get a log
// @Tags logs
// @Produce json
// @Param id path int true "Log ID"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/logs/{id} [get]
func (h *LogHandler) GetLog(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Log ID must be a number"),
		)
	}

	log, err := h.usecase.GetLog(c.UserContext(), int64(id))
	if err != nil {
		h.logger.Error("Failed to get log", zap.Int("id", id), zap.Error(err))
		return sendError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(log, "Log retrieved successfully"))
}

// CreateLog godoc
// @Summary Create a log
// @Description Create a log from a JSON body, or from a multipart form with
// @Description log.* fields and files under "attachments"
// @Tags logs
// @Accept json
// @Accept mpfd
// @Produce json
// @Param request body CreateLogRequest true "Log to create"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 502 {object} entity.APIResponse
// @Router /api/v1/logs [post]
func (h *LogHandler) CreateLog(c *fiber.Ctx) error {
	var (
		input *usecase.CreateLogInput
		err   error
	)
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		input, err = h.parseMultipart(c)
	} else {
		input, err = h.parseJSON(c)
	}
	if err != nil {
		h.logger.Error("Failed to parse create log request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body", err.Error()),
		)
	}

	log, err := h.usecase.CreateLog(c.UserContext(), input)
	if err != nil {
		h.logger.Error("Failed to create log", zap.Error(err))
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(log, "Log created successfully"),
	)
}

func (h *LogHandler) parseJSON(c *fiber.Ctx) (*usecase.CreateLogInput, error) {
	var req CreateLogRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	return &usecase.CreateLogInput{
		Log:        &req.CreateLog,
		ReadyFiles: req.ReadyAttachments,
	}, nil
}

func (h *LogHandler) parseMultipart(c *fiber.Ctx) (*usecase.CreateLogInput, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	form, err := entity.ParseMultipartForm(mf)
	if err != nil {
		return nil, err
	}

	var log entity.CreateLog
	if err := log.FromMultipart(form, logFormPrefix); err != nil {
		return nil, err
	}

	input := &usecase.CreateLogInput{Log: &log}
	for _, part := range form.GetContents(attachmentsField) {
		input.Uploads = append(input.Uploads, entity.FileUpload{
			Filename:    part.FileName,
			ContentType: part.ContentType,
			Content:     part.Data,
		})
	}
	if ready, ok := form.GetContent(readyAttachmentsField); ok {
		input.ReadyFiles = splitCSV(string(ready.Data))
	}
	return input, nil
}

// ListReadyAttachments godoc
// @Summary List attachments waiting in the ready folder
// @Tags logs
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/attachments [get]
func (h *LogHandler) ListReadyAttachments(c *fiber.Ctx) error {
	names, err := h.usecase.ListReadyAttachments(c.UserContext())
	if err != nil {
		return sendError(c, err)
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(entity.NewSuccessResponse(names, "Attachments retrieved successfully"))
}

func splitCSV(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
