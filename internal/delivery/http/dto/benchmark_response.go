package dto

import "github.com/google/uuid"

type BenchmarkEntryResponse struct {
	EntryID     uuid.UUID `json:"entry_id"`
	SkillID     uuid.UUID `json:"skill_id"`
	SkillName   string    `json:"skill_name"`
	Weight      float64   `json:"weight"`
	Importance  string    `json:"importance"`
	SkillActive bool      `json:"skill_active"`
}
