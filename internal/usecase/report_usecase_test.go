package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-ready/internal/pkg/apperr"

	"github.com/google/uuid"
)

type mockReadiness struct {
	latest    SnapshotItem
	latestErr error
	breakdown BreakdownResult
	history   []SnapshotItem
}

func (m mockReadiness) Calculate(context.Context, uuid.UUID, uuid.UUID, string) (SnapshotItem, error) {
	return SnapshotItem{}, nil
}
func (m mockReadiness) Breakdown(context.Context, uuid.UUID) (BreakdownResult, error) {
	return m.breakdown, nil
}
func (m mockReadiness) Latest(context.Context, uuid.UUID, uuid.UUID) (SnapshotItem, error) {
	return m.latest, m.latestErr
}
func (m mockReadiness) History(context.Context, uuid.UUID, uuid.UUID, int) ([]SnapshotItem, error) {
	return m.history, nil
}

type failingRoadmap struct{}

func (failingRoadmap) Generate(context.Context, []BreakdownSkillItem) ([]RoadmapStep, error) {
	return nil, errors.New("generator down")
}

func TestReport_AssemblesAllSections(t *testing.T) {
	snapID := uuid.New()
	uc := NewReportUsecase(mockReadiness{
		latest: SnapshotItem{ID: snapID, Tier: "DEVELOPING", Percentage: 50},
		breakdown: BreakdownResult{
			SnapshotID: snapID,
			MissingSkills: []BreakdownSkillItem{
				{SkillName: "CSS", RequiredWeight: 5, Importance: "optional"},
				{SkillName: "React", RequiredWeight: 10, Importance: "required"},
			},
			MissingCount: 2,
		},
		history: []SnapshotItem{{ID: snapID}},
	}, GapRoadmap{})

	rep, err := uc.Report(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.Snapshot.ID != snapID || len(rep.History) != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if len(rep.Roadmap) != 2 {
		t.Fatalf("expected 2 roadmap steps, got %d", len(rep.Roadmap))
	}
	if rep.Roadmap[0].SkillName != "React" {
		t.Fatalf("heaviest gap should lead the roadmap, got %q", rep.Roadmap[0].SkillName)
	}
	if rep.Roadmap[0].Note != "required for this role" {
		t.Fatalf("unexpected note %q", rep.Roadmap[0].Note)
	}
}

func TestReport_NoSnapshotYet(t *testing.T) {
	uc := NewReportUsecase(mockReadiness{latestErr: apperr.NotFound("snapshot", "none")}, GapRoadmap{})

	_, err := uc.Report(context.Background(), uuid.New(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestReport_RoadmapFailureIsNotFatal(t *testing.T) {
	uc := NewReportUsecase(mockReadiness{latest: SnapshotItem{ID: uuid.New()}}, failingRoadmap{})

	rep, err := uc.Report(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.Roadmap != nil {
		t.Fatalf("roadmap should be empty when the generator fails, got %v", rep.Roadmap)
	}
}
