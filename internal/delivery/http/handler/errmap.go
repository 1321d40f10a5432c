package handler

import (
	"skill-ready/internal/delivery/http/middleware"
	"skill-ready/internal/pkg/apperr"
	"skill-ready/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// mapUsecaseError translates the usecase error taxonomy into the HTTP error
// envelope. Unknown kinds surface as 500 so the error middleware hides the
// cause from clients.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case apperr.KindNotFound:
		return middleware.NewAppError(fiber.StatusNotFound, err.Error(), nil, err)
	case apperr.KindConflict:
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	case apperr.KindInUse:
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	case apperr.KindExtraction:
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	case apperr.KindTransient:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func authenticatedUserID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}
