package skill

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceSelf      = "self"
	SourceResume    = "resume"
	SourceValidated = "validated"
	SourceDemo      = "demo"
)

const (
	ValidationNone      = "none"
	ValidationPending   = "pending"
	ValidationValidated = "validated"
	ValidationRejected  = "rejected"
)

type Skill struct {
	ID             uuid.UUID
	Name           string
	NormalizedName string
	Domain         string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OwnedSkill is a skill a person has claimed. Presence alone counts toward
// readiness; Source records how the claim got here and is never downgraded.
type OwnedSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	Source           string
	ValidationStatus string
	CreatedAt        time.Time
}

func ValidSource(s string) bool {
	switch s {
	case SourceSelf, SourceResume, SourceValidated, SourceDemo:
		return true
	}
	return false
}
