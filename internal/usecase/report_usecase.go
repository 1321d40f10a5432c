package usecase

import (
	"context"
	"sort"

	"skill-ready/internal/pkg/apperr"

	"github.com/google/uuid"
)

// RoadmapStep is whatever the external roadmap generator produces from a
// skill breakdown. Its ranking logic lives outside this engine.
type RoadmapStep struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	Note      string    `json:"note"`
}

// RoadmapGenerator is an external collaborator: it consumes the missing-skill
// breakdown and returns prioritized steps. The engine only hands it data.
type RoadmapGenerator interface {
	Generate(ctx context.Context, missing []BreakdownSkillItem) ([]RoadmapStep, error)
}

type ReadinessReport struct {
	Snapshot  SnapshotItem
	Breakdown BreakdownResult
	History   []SnapshotItem
	Roadmap   []RoadmapStep
}

type ReportUsecase interface {
	// Report assembles the latest snapshot, its live-joined breakdown, recent
	// history and the roadmap collaborator's output into one view.
	Report(ctx context.Context, userID, roleID uuid.UUID) (ReadinessReport, error)
}

type Report struct {
	readiness ReadinessUsecase
	roadmap   RoadmapGenerator
}

func NewReportUsecase(readiness ReadinessUsecase, roadmap RoadmapGenerator) *Report {
	return &Report{readiness: readiness, roadmap: roadmap}
}

func (u *Report) Report(ctx context.Context, userID, roleID uuid.UUID) (ReadinessReport, error) {
	if userID == uuid.Nil || roleID == uuid.Nil {
		return ReadinessReport{}, apperr.Validation("user id and role id are required")
	}

	latest, err := u.readiness.Latest(ctx, userID, roleID)
	if err != nil {
		return ReadinessReport{}, err
	}

	breakdown, err := u.readiness.Breakdown(ctx, latest.ID)
	if err != nil {
		return ReadinessReport{}, err
	}

	history, err := u.readiness.History(ctx, userID, roleID, 10)
	if err != nil {
		return ReadinessReport{}, err
	}

	report := ReadinessReport{
		Snapshot:  latest,
		Breakdown: breakdown,
		History:   history,
	}

	if u.roadmap != nil {
		steps, err := u.roadmap.Generate(ctx, breakdown.MissingSkills)
		if err != nil {
			// The roadmap is an enrichment from an external collaborator; its
			// failure must not take the whole report down.
			return report, nil
		}
		report.Roadmap = steps
	}
	return report, nil
}

// GapRoadmap is the built-in passthrough generator: missing skills in
// breakdown order, heaviest first, with no further ranking.
type GapRoadmap struct{}

func (GapRoadmap) Generate(_ context.Context, missing []BreakdownSkillItem) ([]RoadmapStep, error) {
	ordered := make([]BreakdownSkillItem, len(missing))
	copy(ordered, missing)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RequiredWeight > ordered[j].RequiredWeight
	})

	steps := make([]RoadmapStep, 0, len(ordered))
	for _, m := range ordered {
		note := ""
		if m.Importance != "" {
			note = m.Importance + " for this role"
		}
		steps = append(steps, RoadmapStep{
			SkillID:   m.SkillID,
			SkillName: m.SkillName,
			Note:      note,
		})
	}
	return steps, nil
}
