package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"bookkeeping-gateway/internal/domain/entity"
	"bookkeeping-gateway/internal/usecase"
)

type APICallHandler struct {
	usecase usecase.APICallUsecase
	logger  *zap.Logger
}

func NewAPICallHandler(usecase usecase.APICallUsecase, logger *zap.Logger) *APICallHandler {
	return &APICallHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// ListAPICalls godoc
// @Summary List calls made to Bookkeeping
// @Tags api-calls
// @Produce json
// @Param limit query int false "Maximum number of calls" default(50)
// @Success 200 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/api-calls [get]
func (h *APICallHandler) ListAPICalls(c *fiber.Ctx) error {
	calls, err := h.usecase.ListAPICalls(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		h.logger.Error("Failed to list API calls", zap.Error(err))
		return sendError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(calls, "API calls retrieved successfully"))
}

// GetAPICall godoc
// @Summary Get a call by the X-Request-ID it was sent with
// @Tags api-calls
// @Produce json
// @Param correlationId path string true "Correlation ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/api-calls/{correlationId} [get]
func (h *APICallHandler) GetAPICall(c *fiber.Ctx) error {
	call, err := h.usecase.GetAPICall(c.UserContext(), c.Params("correlationId"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(call, "API call retrieved successfully"))
}
