package handler

import (
	"skill-ready/internal/delivery/http/dto"
	"skill-ready/internal/delivery/http/middleware"
	"skill-ready/internal/pkg/response"
	"skill-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

type addUserSkillRequest struct {
	SkillID uuid.UUID `json:"skill_id"`
}

type addDemoSkillsRequest struct {
	SkillIDs []uuid.UUID `json:"skill_ids"`
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListUserSkills(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.UserSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toUserSkillResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserSkillHandler) Add(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	var req addUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	created, err := h.uc.AddSelfSkill(c.Context(), userID, req.SkillID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill added successfully", toUserSkillResponse(created))
}

// AddDemo seeds a set of demo-sourced claims in one call, used by onboarding
// flows. Pairs the user already owns are skipped, not overwritten.
func (h *UserSkillHandler) AddDemo(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	var req addDemoSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	added, err := h.uc.AddDemoSkills(c.Context(), userID, req.SkillIDs)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"added_count": added})
}

func (h *UserSkillHandler) Delete(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	if err := h.uc.RemoveUserSkill(c.Context(), userID, skillID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill removed successfully", nil)
}

func toUserSkillResponse(it usecase.UserSkillItem) dto.UserSkillResponse {
	return dto.UserSkillResponse{
		ID:               it.ID,
		SkillID:          it.SkillID,
		SkillName:        it.SkillName,
		Source:           it.Source,
		ValidationStatus: it.ValidationStatus,
	}
}
