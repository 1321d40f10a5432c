package handler

import (
	"skill-ready/internal/delivery/http/dto"
	"skill-ready/internal/delivery/http/middleware"
	"skill-ready/internal/pkg/response"
	"skill-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RoleHandler struct {
	uc         usecase.RoleUsecase
	benchmarks usecase.BenchmarkUsecase
}

type createRoleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type addBenchmarkEntryRequest struct {
	SkillID    uuid.UUID `json:"skill_id"`
	Importance string    `json:"importance"`
	// A pointer so an omitted weight falls back to the 1.0 default instead
	// of decoding to 0.
	Weight *float64 `json:"weight"`
}

type updateBenchmarkEntryRequest struct {
	Weight     float64 `json:"weight"`
	Importance string  `json:"importance"`
	IsActive   bool    `json:"is_active"`
}

func NewRoleHandler(uc usecase.RoleUsecase, benchmarks usecase.BenchmarkUsecase) *RoleHandler {
	return &RoleHandler{uc: uc, benchmarks: benchmarks}
}

func (h *RoleHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListRoles(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.RoleResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.RoleResponse{ID: it.ID, Title: it.Title, Description: it.Description})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *RoleHandler) Create(c fiber.Ctx) error {
	var req createRoleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	created, err := h.uc.AddRole(c.Context(), usecase.CreateRoleInput{Title: req.Title, Description: req.Description})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Role created successfully",
		dto.RoleResponse{ID: created.ID, Title: created.Title, Description: created.Description})
}

// Benchmark returns the role's active benchmark with current skill names.
func (h *RoleHandler) Benchmark(c fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	entries, err := h.benchmarks.Resolve(c.Context(), roleID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toBenchmarkResponses(entries))
}

func (h *RoleHandler) AddBenchmarkEntry(c fiber.Ctx) error {
	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	var req addBenchmarkEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	created, err := h.benchmarks.AddEntry(c.Context(), roleID, usecase.AddBenchmarkEntryInput{
		SkillID:    req.SkillID,
		Importance: req.Importance,
		Weight:     req.Weight,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Benchmark entry created successfully", toBenchmarkResponse(created))
}

func (h *RoleHandler) UpdateBenchmarkEntry(c fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("entryId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	var req updateBenchmarkEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	updated, err := h.benchmarks.UpdateEntry(c.Context(), entryID, usecase.UpdateBenchmarkEntryInput{
		Weight:     req.Weight,
		Importance: req.Importance,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Benchmark entry updated successfully", toBenchmarkResponse(updated))
}

func toBenchmarkResponse(e usecase.BenchmarkEntryItem) dto.BenchmarkEntryResponse {
	return dto.BenchmarkEntryResponse{
		EntryID:     e.EntryID,
		SkillID:     e.SkillID,
		SkillName:   e.SkillName,
		Weight:      e.Weight,
		Importance:  e.Importance,
		SkillActive: e.SkillActive,
	}
}

func toBenchmarkResponses(items []usecase.BenchmarkEntryItem) []dto.BenchmarkEntryResponse {
	res := make([]dto.BenchmarkEntryResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toBenchmarkResponse(it))
	}
	return res
}
