package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-ready/internal/domain/readiness"
	"skill-ready/internal/pkg/apperr"
	"skill-ready/internal/pkg/keyedmutex"
	"skill-ready/internal/repository"

	"github.com/google/uuid"
)

// WarningEmptyBenchmark rides along with a snapshot computed against a role
// that has no active benchmark entries: the score is legitimately 0/0, not an
// error, but callers should surface the misconfiguration.
const WarningEmptyBenchmark = "empty_benchmark"

type SnapshotItem struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	RoleID           uuid.UUID
	TotalScore       float64
	MaxPossibleScore float64
	Percentage       int
	Tier             string
	CalculatedAt     time.Time
	TriggerSource    string
	Warning          string
}

type BreakdownSkillItem struct {
	SkillID          uuid.UUID
	SkillName        string
	RequiredWeight   float64
	AchievedWeight   float64
	Importance       string
	SkillSource      string
	ValidationStatus string
}

type BreakdownResult struct {
	SnapshotID    uuid.UUID
	MetSkills     []BreakdownSkillItem
	MissingSkills []BreakdownSkillItem
	MetCount      int
	MissingCount  int
}

// ReadinessNotifier receives snapshot-written events; the websocket hub
// implements it in delivery.
type ReadinessNotifier interface {
	ReadinessUpdated(userID, roleID, snapshotID uuid.UUID, tier string)
}

type ReadinessUsecase interface {
	Calculate(ctx context.Context, userID, roleID uuid.UUID, triggerSource string) (SnapshotItem, error)
	Breakdown(ctx context.Context, snapshotID uuid.UUID) (BreakdownResult, error)
	Latest(ctx context.Context, userID, roleID uuid.UUID) (SnapshotItem, error)
	History(ctx context.Context, userID, roleID uuid.UUID, limit int) ([]SnapshotItem, error)
}

type Readiness struct {
	roles      repository.RoleRepository
	benchmarks repository.BenchmarkRepository
	userSkills repository.UserSkillRepository
	snapshots  repository.SnapshotRepository

	// calcLocks serializes Calculate per (person, role): two concurrent
	// recalculations must not race out interleaved duplicate snapshots.
	calcLocks *keyedmutex.KeyedMutex
	notifier  ReadinessNotifier
}

func NewReadinessUsecase(
	roles repository.RoleRepository,
	benchmarks repository.BenchmarkRepository,
	userSkills repository.UserSkillRepository,
	snapshots repository.SnapshotRepository,
	notifier ReadinessNotifier,
) *Readiness {
	return &Readiness{
		roles:      roles,
		benchmarks: benchmarks,
		userSkills: userSkills,
		snapshots:  snapshots,
		calcLocks:  keyedmutex.New(),
		notifier:   notifier,
	}
}

func (u *Readiness) Calculate(ctx context.Context, userID, roleID uuid.UUID, triggerSource string) (SnapshotItem, error) {
	if userID == uuid.Nil || roleID == uuid.Nil {
		return SnapshotItem{}, apperr.Validation("user id and role id are required")
	}
	triggerSource = strings.TrimSpace(triggerSource)
	if triggerSource == "" {
		triggerSource = "manual"
	}

	lockKey := userID.String() + ":" + roleID.String()
	u.calcLocks.Lock(lockKey)
	defer u.calcLocks.Unlock(lockKey)

	exists, err := u.roles.ExistsByID(ctx, roleID)
	if err != nil {
		return SnapshotItem{}, apperr.Transient(err)
	}
	if !exists {
		return SnapshotItem{}, apperr.NotFound("role", roleID.String())
	}

	rows, err := u.benchmarks.ResolveActiveByRole(ctx, roleID)
	if err != nil {
		return SnapshotItem{}, apperr.Transient(err)
	}

	owned, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return SnapshotItem{}, apperr.Transient(err)
	}

	entries := make([]readiness.BenchmarkEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, readiness.BenchmarkEntry{
			SkillID:     r.SkillID,
			SkillName:   r.SkillName,
			Weight:      r.Weight,
			Importance:  r.Importance,
			SkillActive: r.SkillActive,
		})
	}
	ownedSkills := make([]readiness.OwnedSkill, 0, len(owned))
	for _, o := range owned {
		ownedSkills = append(ownedSkills, readiness.OwnedSkill{SkillID: o.SkillID, Source: o.Source})
	}

	result := readiness.Score(entries, ownedSkills)

	breakdownRows := make([]repository.SnapshotBreakdownRow, 0, len(result.Breakdown))
	for _, b := range result.Breakdown {
		breakdownRows = append(breakdownRows, repository.SnapshotBreakdownRow{
			SkillID:        b.SkillID,
			RequiredWeight: b.RequiredWeight,
			AchievedWeight: b.AchievedWeight,
			Status:         b.Status,
			SkillSource:    b.SkillSource,
		})
	}

	snap, err := u.snapshots.CreateWithBreakdown(ctx, repository.Snapshot{
		ID:               uuid.New(),
		UserID:           userID,
		RoleID:           roleID,
		TotalScore:       result.TotalScore,
		MaxPossibleScore: result.MaxPossibleScore,
		TriggerSource:    triggerSource,
	}, breakdownRows)
	if err != nil {
		return SnapshotItem{}, apperr.Transient(err)
	}

	item := toSnapshotItem(snap)
	if len(rows) == 0 {
		item.Warning = WarningEmptyBenchmark
	}

	if u.notifier != nil {
		u.notifier.ReadinessUpdated(userID, roleID, snap.ID, item.Tier)
	}
	return item, nil
}

func (u *Readiness) Breakdown(ctx context.Context, snapshotID uuid.UUID) (BreakdownResult, error) {
	if snapshotID == uuid.Nil {
		return BreakdownResult{}, apperr.Validation("snapshot id is required")
	}

	if _, err := u.snapshots.GetByID(ctx, snapshotID); err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			return BreakdownResult{}, apperr.NotFound("snapshot", snapshotID.String())
		}
		return BreakdownResult{}, apperr.Transient(err)
	}

	views, err := u.snapshots.BreakdownBySnapshotID(ctx, snapshotID)
	if err != nil {
		return BreakdownResult{}, apperr.Transient(err)
	}

	res := BreakdownResult{
		SnapshotID:    snapshotID,
		MetSkills:     make([]BreakdownSkillItem, 0, len(views)),
		MissingSkills: make([]BreakdownSkillItem, 0),
	}
	for _, v := range views {
		item := BreakdownSkillItem{
			SkillID:          v.SkillID,
			SkillName:        v.SkillName,
			RequiredWeight:   v.RequiredWeight,
			AchievedWeight:   v.AchievedWeight,
			Importance:       v.Importance,
			SkillSource:      v.SkillSource,
			ValidationStatus: v.ValidationStatus,
		}
		if v.Status == readiness.StatusMet {
			res.MetSkills = append(res.MetSkills, item)
		} else {
			res.MissingSkills = append(res.MissingSkills, item)
		}
	}
	res.MetCount = len(res.MetSkills)
	res.MissingCount = len(res.MissingSkills)
	return res, nil
}

func (u *Readiness) Latest(ctx context.Context, userID, roleID uuid.UUID) (SnapshotItem, error) {
	snap, err := u.snapshots.LatestByUserRole(ctx, userID, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			return SnapshotItem{}, apperr.NotFound("snapshot", "no snapshot for this role yet")
		}
		return SnapshotItem{}, apperr.Transient(err)
	}
	return toSnapshotItem(snap), nil
}

func (u *Readiness) History(ctx context.Context, userID, roleID uuid.UUID, limit int) ([]SnapshotItem, error) {
	snaps, err := u.snapshots.ListByUserRole(ctx, userID, roleID, limit)
	if err != nil {
		return nil, apperr.Transient(err)
	}
	out := make([]SnapshotItem, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, toSnapshotItem(s))
	}
	return out, nil
}

func toSnapshotItem(s repository.Snapshot) SnapshotItem {
	pct := readiness.Percentage(s.TotalScore, s.MaxPossibleScore)
	return SnapshotItem{
		ID:               s.ID,
		UserID:           s.UserID,
		RoleID:           s.RoleID,
		TotalScore:       s.TotalScore,
		MaxPossibleScore: s.MaxPossibleScore,
		Percentage:       pct,
		Tier:             readiness.TierFor(pct),
		CalculatedAt:     s.CalculatedAt,
		TriggerSource:    s.TriggerSource,
	}
}
