package readiness

import (
	"testing"

	"github.com/google/uuid"
)

func TestTierFor_ExactBoundaries(t *testing.T) {
	cases := []struct {
		pct  int
		want string
	}{
		{0, TierNotReady},
		{39, TierNotReady},
		{40, TierDeveloping},
		{69, TierDeveloping},
		{70, TierReady},
		{89, TierReady},
		{90, TierExcellent},
		{100, TierExcellent},
	}
	for _, tc := range cases {
		if got := TierFor(tc.pct); got != tc.want {
			t.Fatalf("TierFor(%d) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(0, 0); got != 0 {
		t.Fatalf("Percentage(0,0) = %d, want 0", got)
	}
	if got := Percentage(20, 25); got != 80 {
		t.Fatalf("Percentage(20,25) = %d, want 80", got)
	}
	if got := Percentage(1, 3); got != 33 {
		t.Fatalf("Percentage(1,3) = %d, want 33", got)
	}
	if got := Percentage(2, 3); got != 67 {
		t.Fatalf("Percentage(2,3) = %d, want 67", got)
	}
	if got := Percentage(500, 25); got != 100 {
		t.Fatalf("Percentage must clamp to 100, got %d", got)
	}
}

func TestScore_FrontendInternScenario(t *testing.T) {
	html := uuid.New()
	css := uuid.New()
	react := uuid.New()

	entries := []BenchmarkEntry{
		{SkillID: html, SkillName: "HTML", Weight: 10, Importance: ImportanceRequired, SkillActive: true},
		{SkillID: css, SkillName: "CSS", Weight: 10, Importance: ImportanceRequired, SkillActive: true},
		{SkillID: react, SkillName: "React", Weight: 5, Importance: ImportanceOptional, SkillActive: true},
	}
	owned := []OwnedSkill{
		{SkillID: html, Source: "self"},
		{SkillID: css, Source: "resume"},
	}

	res := Score(entries, owned)

	if res.TotalScore != 20 {
		t.Fatalf("total_score = %v, want 20", res.TotalScore)
	}
	if res.MaxPossibleScore != 25 {
		t.Fatalf("max_possible_score = %v, want 25", res.MaxPossibleScore)
	}
	if res.Percentage != 80 {
		t.Fatalf("percentage = %d, want 80", res.Percentage)
	}
	if res.Tier != TierReady {
		t.Fatalf("tier = %s, want %s", res.Tier, TierReady)
	}

	byID := make(map[uuid.UUID]BreakdownEntry, len(res.Breakdown))
	for _, e := range res.Breakdown {
		byID[e.SkillID] = e
	}
	if e := byID[html]; e.Status != StatusMet || e.AchievedWeight != 10 || e.SkillSource != "self" {
		t.Fatalf("html breakdown wrong: %+v", e)
	}
	if e := byID[css]; e.Status != StatusMet || e.SkillSource != "resume" {
		t.Fatalf("css breakdown wrong: %+v", e)
	}
	if e := byID[react]; e.Status != StatusMissing || e.AchievedWeight != 0 || e.SkillSource != "" {
		t.Fatalf("react breakdown wrong: %+v", e)
	}
}

func TestScore_EmptyBenchmark(t *testing.T) {
	res := Score(nil, []OwnedSkill{{SkillID: uuid.New(), Source: "self"}})
	if res.TotalScore != 0 || res.MaxPossibleScore != 0 {
		t.Fatalf("empty benchmark must score 0/0, got %v/%v", res.TotalScore, res.MaxPossibleScore)
	}
	if res.Percentage != 0 {
		t.Fatalf("empty benchmark percentage = %d, want 0", res.Percentage)
	}
	if res.Tier != TierNotReady {
		t.Fatalf("empty benchmark tier = %s, want %s", res.Tier, TierNotReady)
	}
	if len(res.Breakdown) != 0 {
		t.Fatalf("empty benchmark must have empty breakdown, got %d entries", len(res.Breakdown))
	}
}

// Owned skill on a zero-weight entry reads as missing: the met test is
// achieved > 0. Benchmark-configuration footgun, preserved on purpose.
func TestScore_ZeroWeightOwnedSkillReadsMissing(t *testing.T) {
	id := uuid.New()
	res := Score(
		[]BenchmarkEntry{{SkillID: id, SkillName: "Git", Weight: 0, Importance: ImportanceRequired, SkillActive: true}},
		[]OwnedSkill{{SkillID: id, Source: "self"}},
	)
	if len(res.Breakdown) != 1 {
		t.Fatalf("expected 1 breakdown entry, got %d", len(res.Breakdown))
	}
	if res.Breakdown[0].Status != StatusMissing {
		t.Fatalf("zero-weight owned skill status = %s, want %s", res.Breakdown[0].Status, StatusMissing)
	}
}

func TestScore_BoundsAndDedup(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	entries := []BenchmarkEntry{
		{SkillID: a, Weight: 3, Importance: ImportanceRequired},
		{SkillID: b, Weight: 7, Importance: ImportanceOptional},
	}
	owned := []OwnedSkill{
		{SkillID: a, Source: "self"},
		{SkillID: a, Source: "demo"},
	}

	res := Score(entries, owned)
	if res.TotalScore != 3 {
		t.Fatalf("duplicate owned rows must not double count: total = %v", res.TotalScore)
	}
	if res.TotalScore < 0 || res.TotalScore > res.MaxPossibleScore {
		t.Fatalf("0 <= total <= max violated: %v / %v", res.TotalScore, res.MaxPossibleScore)
	}
	byID := map[uuid.UUID]BreakdownEntry{}
	for _, e := range res.Breakdown {
		byID[e.SkillID] = e
	}
	if byID[a].SkillSource != "self" {
		t.Fatalf("first owned row wins the source copy, got %q", byID[a].SkillSource)
	}
}
