package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-ready/internal/domain/textmatch"
	"skill-ready/internal/extraction"
	"skill-ready/internal/pkg/apperr"
	"skill-ready/internal/repository"

	"github.com/google/uuid"
)

type SuggestionItem struct {
	SkillID   uuid.UUID
	SkillName string
	ResumeID  uuid.UUID
	Status    string
	CreatedAt time.Time
}

type UploadResumeInput struct {
	FileName string
	Content  []byte
}

type UploadResumeResult struct {
	ResumeID       uuid.UUID
	MatchedCount   int
	SuggestedCount int
}

type ConfirmInput struct {
	AcceptedIDs []uuid.UUID
	RejectedIDs []uuid.UUID
}

type ConfirmOutcome struct {
	AcceptedCount    int
	RejectedCount    int
	RemainingPending int
}

type SuggestionUsecase interface {
	// UploadResume extracts text, stores the resume, matches it against the
	// active vocabulary and records suggestions. "Nothing matched" is an empty
	// success; an unreadable file is an extraction failure.
	UploadResume(ctx context.Context, userID uuid.UUID, in UploadResumeInput) (UploadResumeResult, error)
	// Rescan re-runs matching over an already-stored resume text.
	Rescan(ctx context.Context, userID, resumeID uuid.UUID) (UploadResumeResult, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]SuggestionItem, error)
	Confirm(ctx context.Context, userID uuid.UUID, in ConfirmInput) (ConfirmOutcome, error)
	RejectAll(ctx context.Context, userID uuid.UUID) (int, error)
}

type Suggestion struct {
	resumes     repository.ResumeRepository
	suggestions repository.SuggestionRepository
	skills      repository.SkillRepository
	userSkills  repository.UserSkillRepository
	extractor   extraction.Extractor
	cache       Cache
}

func NewSuggestionUsecase(
	resumes repository.ResumeRepository,
	suggestions repository.SuggestionRepository,
	skills repository.SkillRepository,
	userSkills repository.UserSkillRepository,
	extractor extraction.Extractor,
	cache Cache,
) *Suggestion {
	return &Suggestion{
		resumes:     resumes,
		suggestions: suggestions,
		skills:      skills,
		userSkills:  userSkills,
		extractor:   extractor,
		cache:       cache,
	}
}

func (u *Suggestion) UploadResume(ctx context.Context, userID uuid.UUID, in UploadResumeInput) (UploadResumeResult, error) {
	if userID == uuid.Nil {
		return UploadResumeResult{}, apperr.Validation("user id is required")
	}
	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" {
		fileName = "resume.txt"
	}

	text, err := u.extractor.Extract(ctx, fileName, in.Content)
	if err != nil {
		// ExtractionFailed passes through untouched so the caller can tell it
		// apart from "no skills found".
		if apperr.Is(err, apperr.KindExtraction) {
			return UploadResumeResult{}, err
		}
		return UploadResumeResult{}, apperr.Extraction("resume text extraction failed", err)
	}

	res, err := u.resumes.Create(ctx, repository.Resume{
		ID:       uuid.New(),
		UserID:   userID,
		FileName: fileName,
		RawText:  text,
	})
	if err != nil {
		return UploadResumeResult{}, apperr.Transient(err)
	}

	return u.scan(ctx, userID, res.ID, text)
}

func (u *Suggestion) Rescan(ctx context.Context, userID, resumeID uuid.UUID) (UploadResumeResult, error) {
	if resumeID == uuid.Nil {
		return UploadResumeResult{}, apperr.Validation("resume id is required")
	}

	res, err := u.resumes.GetByIDForUser(ctx, resumeID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return UploadResumeResult{}, apperr.NotFound("resume", resumeID.String())
		}
		return UploadResumeResult{}, apperr.Transient(err)
	}

	return u.scan(ctx, userID, res.ID, res.RawText)
}

func (u *Suggestion) scan(ctx context.Context, userID, resumeID uuid.UUID, text string) (UploadResumeResult, error) {
	// Cross-instance guard: overlapping scans of the same resume add nothing
	// and churn the suggestion table. Best effort only; the replace itself is
	// transactional either way.
	if u.cache != nil {
		key := "resume:scan:" + resumeID.String()
		if ok, err := u.cache.SetIfNotExists(ctx, key, "1", 10*time.Second); err == nil && !ok {
			return UploadResumeResult{}, apperr.Conflict("resume", "a scan for this resume is already running")
		}
		defer func() {
			_ = u.cache.Delete(context.Background(), key)
		}()
	}

	vocabSkills, err := u.skills.ListActive(ctx)
	if err != nil {
		return UploadResumeResult{}, apperr.Transient(err)
	}
	vocab := make([]textmatch.VocabularyEntry, 0, len(vocabSkills))
	for _, s := range vocabSkills {
		vocab = append(vocab, textmatch.VocabularyEntry{SkillID: s.ID, Name: s.Name})
	}

	matched := textmatch.MatchAll(text, vocab)

	ownedIDs, err := u.userSkills.FindSkillIDsByUserID(ctx, userID)
	if err != nil {
		return UploadResumeResult{}, apperr.Transient(err)
	}
	owned := make(map[uuid.UUID]struct{}, len(ownedIDs))
	for _, id := range ownedIDs {
		owned[id] = struct{}{}
	}

	// Never suggest what is already on the profile.
	candidates := make([]uuid.UUID, 0, len(matched))
	for _, id := range matched {
		if _, ok := owned[id]; ok {
			continue
		}
		candidates = append(candidates, id)
	}

	persisted, err := u.suggestions.ReplaceForResume(ctx, userID, resumeID, candidates)
	if err != nil {
		return UploadResumeResult{}, apperr.Transient(err)
	}

	return UploadResumeResult{
		ResumeID:       resumeID,
		MatchedCount:   len(matched),
		SuggestedCount: persisted,
	}, nil
}

func (u *Suggestion) ListPending(ctx context.Context, userID uuid.UUID) ([]SuggestionItem, error) {
	items, err := u.suggestions.ListPendingByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Transient(err)
	}
	out := make([]SuggestionItem, 0, len(items))
	for _, it := range items {
		out = append(out, SuggestionItem{
			SkillID:   it.SkillID,
			SkillName: it.SkillName,
			ResumeID:  it.ResumeID,
			Status:    it.Status,
			CreatedAt: it.CreatedAt,
		})
	}
	return out, nil
}

func (u *Suggestion) Confirm(ctx context.Context, userID uuid.UUID, in ConfirmInput) (ConfirmOutcome, error) {
	if userID == uuid.Nil {
		return ConfirmOutcome{}, apperr.Validation("user id is required")
	}
	if len(in.AcceptedIDs) == 0 && len(in.RejectedIDs) == 0 {
		return ConfirmOutcome{}, apperr.Validation("nothing to confirm")
	}

	res, err := u.suggestions.Confirm(ctx, userID, in.AcceptedIDs, in.RejectedIDs)
	if err != nil {
		return ConfirmOutcome{}, apperr.Transient(err)
	}
	return ConfirmOutcome{
		AcceptedCount:    res.AcceptedCount,
		RejectedCount:    res.RejectedCount,
		RemainingPending: res.RemainingPending,
	}, nil
}

func (u *Suggestion) RejectAll(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, apperr.Validation("user id is required")
	}
	n, err := u.suggestions.RejectAllPending(ctx, userID)
	if err != nil {
		return 0, apperr.Transient(err)
	}
	return n, nil
}
