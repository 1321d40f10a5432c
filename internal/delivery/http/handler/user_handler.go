package handler

import (
	"errors"

	"skill-ready/internal/delivery/http/dto"
	"skill-ready/internal/delivery/http/middleware"
	"skill-ready/internal/domain/user"
	"skill-ready/internal/pkg/response"
	"skill-ready/internal/usecase"
	useruc "skill-ready/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateMeRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toUserResponse(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	var req updateMeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if req.Email == nil && req.Password == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	usr, err := h.uc.UpdateMe(c.Context(), userID, useruc.UpdateMeInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toUserResponse(usr))
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func toUserResponse(u user.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
