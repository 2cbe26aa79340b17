package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bookkeeping-gateway/internal/domain/entity"
	"bookkeeping-gateway/internal/infrastructure/attachment"
	"bookkeeping-gateway/internal/infrastructure/httpclient"
	"bookkeeping-gateway/internal/usecase"
)

// errorResponse maps an error from the usecase layer to a status and body
func errorResponse(err error) (int, *entity.APIResponse) {
	// field errors inside an undecodable upstream body are not the caller's fault
	if errors.Is(err, httpclient.ErrInvalidResponse) {
		return fiber.StatusBadGateway, entity.NewErrorResponse("UPSTREAM_ERROR", err.Error())
	}

	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		details := make([]string, 0, len(verr.Issues))
		for _, issue := range verr.Issues {
			details = append(details, issue.Field+" "+issue.Reason)
		}
		return fiber.StatusBadRequest, entity.NewErrorResponse("VALIDATION_ERROR", "Request is invalid", details...)
	}

	var fieldErr *entity.FieldError
	var apiErr *httpclient.APIError
	switch {
	case errors.As(err, &fieldErr):
		return fiber.StatusBadRequest, entity.NewErrorResponse("BAD_REQUEST", err.Error())
	case errors.Is(err, attachment.ErrNotFound),
		errors.Is(err, attachment.ErrInvalidName),
		errors.Is(err, attachment.ErrTooLarge):
		return fiber.StatusBadRequest, entity.NewErrorResponse("INVALID_ATTACHMENT", err.Error())
	case errors.Is(err, httpclient.ErrNotFound), errors.Is(err, usecase.ErrAPICallNotFound):
		return fiber.StatusNotFound, entity.NewErrorResponse("NOT_FOUND", err.Error())
	case errors.Is(err, httpclient.ErrUnauthorized):
		return fiber.StatusBadGateway, entity.NewErrorResponse("UPSTREAM_UNAUTHORIZED", err.Error())
	case errors.As(err, &apiErr):
		return fiber.StatusBadGateway, entity.NewErrorResponse("UPSTREAM_ERROR", err.Error())
	}
	return fiber.StatusInternalServerError, entity.NewErrorResponse("INTERNAL_ERROR", err.Error())
}

func sendError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}
