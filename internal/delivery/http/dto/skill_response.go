package dto

import "github.com/google/uuid"

type SkillResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
	Domain         string    `json:"domain,omitempty"`
	IsActive       bool      `json:"is_active"`
}

type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
}
