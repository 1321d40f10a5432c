package handler

import (
	"strconv"

	"skill-ready/internal/delivery/http/dto"
	"skill-ready/internal/delivery/http/middleware"
	"skill-ready/internal/pkg/response"
	"skill-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ReadinessHandler struct {
	uc     usecase.ReadinessUsecase
	report usecase.ReportUsecase
}

func NewReadinessHandler(uc usecase.ReadinessUsecase, report usecase.ReportUsecase) *ReadinessHandler {
	return &ReadinessHandler{uc: uc, report: report}
}

// Calculate recomputes the caller's readiness for a role and stores a new
// snapshot.
func (h *ReadinessHandler) Calculate(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	roleID, err := uuid.Parse(c.Params("roleId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	snap, err := h.uc.Calculate(c.Context(), userID, roleID, "manual")
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Readiness calculated successfully", toSnapshotResponse(snap))
}

func (h *ReadinessHandler) Latest(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	roleID, err := uuid.Parse(c.Params("roleId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	snap, err := h.uc.Latest(c.Context(), userID, roleID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toSnapshotResponse(snap))
}

func (h *ReadinessHandler) History(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	roleID, err := uuid.Parse(c.Params("roleId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	items, err := h.uc.History(c.Context(), userID, roleID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.SnapshotResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toSnapshotResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ReadinessHandler) Breakdown(c fiber.Ctx) error {
	if _, err := authenticatedUserID(c); err != nil {
		return err
	}

	snapshotID, err := uuid.Parse(c.Params("snapshotId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	bd, err := h.uc.Breakdown(c.Context(), snapshotID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toBreakdownResponse(bd))
}

// Report bundles latest snapshot, breakdown, history and roadmap in one call.
func (h *ReadinessHandler) Report(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	roleID, err := uuid.Parse(c.Params("roleId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	rep, err := h.report.Report(c.Context(), userID, roleID)
	if err != nil {
		return mapUsecaseError(err)
	}

	history := make([]dto.SnapshotResponse, 0, len(rep.History))
	for _, it := range rep.History {
		history = append(history, toSnapshotResponse(it))
	}
	roadmap := make([]dto.RoadmapStepResponse, 0, len(rep.Roadmap))
	for _, st := range rep.Roadmap {
		roadmap = append(roadmap, dto.RoadmapStepResponse{SkillID: st.SkillID, SkillName: st.SkillName, Note: st.Note})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ReadinessReportResponse{
		Snapshot:  toSnapshotResponse(rep.Snapshot),
		Breakdown: toBreakdownResponse(rep.Breakdown),
		History:   history,
		Roadmap:   roadmap,
	})
}

func toSnapshotResponse(s usecase.SnapshotItem) dto.SnapshotResponse {
	return dto.SnapshotResponse{
		ID:               s.ID,
		UserID:           s.UserID,
		RoleID:           s.RoleID,
		TotalScore:       s.TotalScore,
		MaxPossibleScore: s.MaxPossibleScore,
		Percentage:       s.Percentage,
		Tier:             s.Tier,
		CalculatedAt:     s.CalculatedAt,
		TriggerSource:    s.TriggerSource,
		Warning:          s.Warning,
	}
}

func toBreakdownResponse(bd usecase.BreakdownResult) dto.BreakdownResponse {
	met := make([]dto.BreakdownSkillResponse, 0, len(bd.MetSkills))
	for _, it := range bd.MetSkills {
		met = append(met, toBreakdownSkillResponse(it))
	}
	missing := make([]dto.BreakdownSkillResponse, 0, len(bd.MissingSkills))
	for _, it := range bd.MissingSkills {
		missing = append(missing, toBreakdownSkillResponse(it))
	}
	return dto.BreakdownResponse{
		SnapshotID:    bd.SnapshotID,
		MetSkills:     met,
		MissingSkills: missing,
		MetCount:      bd.MetCount,
		MissingCount:  bd.MissingCount,
	}
}

func toBreakdownSkillResponse(it usecase.BreakdownSkillItem) dto.BreakdownSkillResponse {
	return dto.BreakdownSkillResponse{
		SkillID:          it.SkillID,
		SkillName:        it.SkillName,
		RequiredWeight:   it.RequiredWeight,
		AchievedWeight:   it.AchievedWeight,
		Importance:       it.Importance,
		SkillSource:      it.SkillSource,
		ValidationStatus: it.ValidationStatus,
	}
}
