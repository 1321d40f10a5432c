package dto

import (
	"time"

	"github.com/google/uuid"
)

type SnapshotResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	RoleID           uuid.UUID `json:"role_id"`
	TotalScore       float64   `json:"total_score"`
	MaxPossibleScore float64   `json:"max_possible_score"`
	Percentage       int       `json:"percentage"`
	Tier             string    `json:"tier"`
	CalculatedAt     time.Time `json:"calculated_at"`
	TriggerSource    string    `json:"trigger_source"`
	Warning          string    `json:"warning,omitempty"`
}

type BreakdownSkillResponse struct {
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	RequiredWeight   float64   `json:"required_weight"`
	AchievedWeight   float64   `json:"achieved_weight"`
	Importance       string    `json:"importance"`
	SkillSource      string    `json:"skill_source,omitempty"`
	ValidationStatus string    `json:"validation_status,omitempty"`
}

type BreakdownResponse struct {
	SnapshotID    uuid.UUID                `json:"snapshot_id"`
	MetSkills     []BreakdownSkillResponse `json:"met_skills"`
	MissingSkills []BreakdownSkillResponse `json:"missing_skills"`
	MetCount      int                      `json:"met_count"`
	MissingCount  int                      `json:"missing_count"`
}

type ReadinessReportResponse struct {
	Snapshot  SnapshotResponse      `json:"snapshot"`
	Breakdown BreakdownResponse     `json:"breakdown"`
	History   []SnapshotResponse    `json:"history"`
	Roadmap   []RoadmapStepResponse `json:"roadmap"`
}

type RoadmapStepResponse struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	Note      string    `json:"note,omitempty"`
}
