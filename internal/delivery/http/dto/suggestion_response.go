package dto

import (
	"time"

	"github.com/google/uuid"
)

type ResumeScanResponse struct {
	ResumeID       uuid.UUID `json:"resume_id"`
	MatchedCount   int       `json:"matched_count"`
	SuggestedCount int       `json:"suggested_count"`
}

type SuggestionResponse struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	ResumeID  uuid.UUID `json:"resume_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ConfirmSuggestionsResponse struct {
	AcceptedCount    int `json:"accepted_count"`
	RejectedCount    int `json:"rejected_count"`
	RemainingPending int `json:"remaining_pending"`
}
