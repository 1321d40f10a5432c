package handler

import (
	"io"

	"skill-ready/internal/delivery/http/dto"
	"skill-ready/internal/delivery/http/middleware"
	"skill-ready/internal/pkg/response"
	"skill-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// maxResumeBytes caps uploads before extraction runs.
const maxResumeBytes = 5 << 20

type ResumeHandler struct {
	uc usecase.SuggestionUsecase
}

type confirmSuggestionsRequest struct {
	AcceptedIDs []uuid.UUID `json:"accepted_ids"`
	RejectedIDs []uuid.UUID `json:"rejected_ids"`
}

func NewResumeHandler(uc usecase.SuggestionUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "A resume file is required", nil, err)
	}
	if fh.Size > maxResumeBytes {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume file too large", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unable to read resume file", nil, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxResumeBytes+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unable to read resume file", nil, err)
	}

	result, err := h.uc.UploadResume(c.Context(), userID, usecase.UploadResumeInput{
		FileName: fh.Filename,
		Content:  content,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Resume scanned successfully", toScanResponse(result))
}

func (h *ResumeHandler) Rescan(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	result, err := h.uc.Rescan(c.Context(), userID, resumeID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Resume rescanned successfully", toScanResponse(result))
}

func (h *ResumeHandler) ListSuggestions(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListPending(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.SuggestionResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.SuggestionResponse{
			SkillID:   it.SkillID,
			SkillName: it.SkillName,
			ResumeID:  it.ResumeID,
			Status:    it.Status,
			CreatedAt: it.CreatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ResumeHandler) Confirm(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	var req confirmSuggestionsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	outcome, err := h.uc.Confirm(c.Context(), userID, usecase.ConfirmInput{
		AcceptedIDs: req.AcceptedIDs,
		RejectedIDs: req.RejectedIDs,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Suggestions confirmed successfully", dto.ConfirmSuggestionsResponse{
		AcceptedCount:    outcome.AcceptedCount,
		RejectedCount:    outcome.RejectedCount,
		RemainingPending: outcome.RemainingPending,
	})
}

func (h *ResumeHandler) RejectAll(c fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	rejected, err := h.uc.RejectAll(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"rejected_count": rejected})
}

func toScanResponse(r usecase.UploadResumeResult) dto.ResumeScanResponse {
	return dto.ResumeScanResponse{
		ResumeID:       r.ResumeID,
		MatchedCount:   r.MatchedCount,
		SuggestedCount: r.SuggestedCount,
	}
}
