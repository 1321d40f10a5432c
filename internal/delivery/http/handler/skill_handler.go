package handler

import (
	"skill-ready/internal/delivery/http/dto"
	"skill-ready/internal/delivery/http/middleware"
	"skill-ready/internal/pkg/response"
	"skill-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type createSkillRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

type renameSkillRequest struct {
	Name string `json:"name"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

// List returns the active vocabulary; the full catalog including deactivated
// skills is an admin view.
func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toSkillResponses(items))
}

func (h *SkillHandler) ListAll(c fiber.Ctx) error {
	items, err := h.uc.ListAllSkills(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toSkillResponses(items))
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req createSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	created, err := h.uc.AddSkill(c.Context(), usecase.CreateSkillInput{Name: req.Name, Domain: req.Domain})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill created successfully", toSkillResponse(created))
}

func (h *SkillHandler) Rename(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	var req renameSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	updated, err := h.uc.RenameSkill(c.Context(), id, req.Name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill renamed successfully", toSkillResponse(updated))
}

func (h *SkillHandler) Deactivate(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	force := c.Query("force") == "true"
	if err := h.uc.DeactivateSkill(c.Context(), id, force); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill deactivated successfully", nil)
}

func toSkillResponse(it usecase.SkillItem) dto.SkillResponse {
	return dto.SkillResponse{
		ID:             it.ID,
		Name:           it.Name,
		NormalizedName: it.NormalizedName,
		Domain:         it.Domain,
		IsActive:       it.IsActive,
	}
}

func toSkillResponses(items []usecase.SkillItem) []dto.SkillResponse {
	res := make([]dto.SkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toSkillResponse(it))
	}
	return res
}
