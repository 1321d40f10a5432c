// Package readiness holds the pure scoring engine: no I/O, deterministic for
// a given benchmark and owned-skill set. Persistence and benchmark resolution
// live in usecase/repository.
package readiness

import (
	"math"

	"github.com/google/uuid"
)

const (
	ImportanceRequired = "required"
	ImportanceOptional = "optional"
)

const (
	StatusMet     = "met"
	StatusMissing = "missing"
)

const (
	TierNotReady   = "NOT_READY"
	TierDeveloping = "DEVELOPING"
	TierReady      = "READY"
	TierExcellent  = "EXCELLENT"
)

// Tier lower bounds, inclusive.
const (
	developingFloor = 40
	readyFloor      = 70
	excellentFloor  = 90
)

type BenchmarkEntry struct {
	SkillID     uuid.UUID
	SkillName   string
	Weight      float64
	Importance  string
	SkillActive bool
}

type OwnedSkill struct {
	SkillID uuid.UUID
	Source  string
}

type BreakdownEntry struct {
	SkillID        uuid.UUID
	SkillName      string
	RequiredWeight float64
	AchievedWeight float64
	Importance     string
	Status         string
	SkillSource    string
}

type Result struct {
	TotalScore       float64
	MaxPossibleScore float64
	Percentage       int
	Tier             string
	Breakdown        []BreakdownEntry
}

// Score aggregates owned skills against a benchmark. Presence alone counts:
// achieved is the full entry weight when the skill is owned, zero otherwise.
// An owned skill on a zero-weight entry reads as missing because the met test
// is achieved > 0; that mirrors how benchmarks behave today and is pinned by
// tests rather than corrected here.
func Score(entries []BenchmarkEntry, owned []OwnedSkill) Result {
	sourceBySkill := make(map[uuid.UUID]string, len(owned))
	for _, o := range owned {
		if o.SkillID == uuid.Nil {
			continue
		}
		if _, ok := sourceBySkill[o.SkillID]; ok {
			continue
		}
		sourceBySkill[o.SkillID] = o.Source
	}

	var total, maxPossible float64
	breakdown := make([]BreakdownEntry, 0, len(entries))

	for _, e := range entries {
		if e.SkillID == uuid.Nil {
			continue
		}
		weight := e.Weight
		if weight < 0 {
			weight = 0
		}
		maxPossible += weight

		achieved := 0.0
		source := ""
		if s, ok := sourceBySkill[e.SkillID]; ok {
			achieved = weight
			source = s
		}
		total += achieved

		status := StatusMissing
		if achieved > 0 {
			status = StatusMet
		}

		breakdown = append(breakdown, BreakdownEntry{
			SkillID:        e.SkillID,
			SkillName:      e.SkillName,
			RequiredWeight: weight,
			AchievedWeight: achieved,
			Importance:     e.Importance,
			Status:         status,
			SkillSource:    source,
		})
	}

	pct := Percentage(total, maxPossible)
	return Result{
		TotalScore:       total,
		MaxPossibleScore: maxPossible,
		Percentage:       pct,
		Tier:             TierFor(pct),
		Breakdown:        breakdown,
	}
}

// Percentage is round(total/max*100) clamped to [0, 100]; 0 when max is 0 so
// an empty benchmark never divides by zero.
func Percentage(total, maxPossible float64) int {
	if maxPossible <= 0 {
		return 0
	}
	pct := int(math.Round(total / maxPossible * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func TierFor(percentage int) string {
	switch {
	case percentage < developingFloor:
		return TierNotReady
	case percentage < readyFloor:
		return TierDeveloping
	case percentage < excellentFloor:
		return TierReady
	default:
		return TierExcellent
	}
}
