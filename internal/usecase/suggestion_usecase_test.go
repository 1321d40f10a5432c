package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"skill-ready/internal/pkg/apperr"
	"skill-ready/internal/repository"

	"github.com/google/uuid"
)

type mockExtractor struct {
	text string
	err  error
}

func (m mockExtractor) Extract(context.Context, string, []byte) (string, error) {
	return m.text, m.err
}

type mockResumeRepo struct {
	stored repository.Resume
	getErr error
}

func (m *mockResumeRepo) Create(_ context.Context, r repository.Resume) (repository.Resume, error) {
	m.stored = r
	return r, nil
}
func (m *mockResumeRepo) GetByIDForUser(context.Context, uuid.UUID, uuid.UUID) (repository.Resume, error) {
	if m.getErr != nil {
		return repository.Resume{}, m.getErr
	}
	return m.stored, nil
}

type mockSkillRepo struct {
	active  []repository.Skill
	byID    map[uuid.UUID]repository.Skill
	created repository.Skill
	renamed struct {
		id             uuid.UUID
		name           string
		normalizedName string
	}
	deactivated uuid.UUID
	refs        int64
	createErr   error
}

func (m *mockSkillRepo) ListActive(context.Context) ([]repository.Skill, error) {
	return m.active, nil
}
func (m *mockSkillRepo) ListAll(context.Context) ([]repository.Skill, error) {
	return m.active, nil
}
func (m *mockSkillRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Skill, error) {
	s, ok := m.byID[id]
	if !ok {
		return repository.Skill{}, repository.ErrSkillNotFound
	}
	return s, nil
}
func (m *mockSkillRepo) Create(_ context.Context, s repository.Skill) (repository.Skill, error) {
	if m.createErr != nil {
		return repository.Skill{}, m.createErr
	}
	m.created = s
	return s, nil
}
func (m *mockSkillRepo) Rename(_ context.Context, id uuid.UUID, name, normalizedName string) (repository.Skill, error) {
	m.renamed.id = id
	m.renamed.name = name
	m.renamed.normalizedName = normalizedName
	s := m.byID[id]
	s.Name = name
	s.NormalizedName = normalizedName
	return s, nil
}
func (m *mockSkillRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	if !active {
		m.deactivated = id
	}
	return nil
}
func (m *mockSkillRepo) CountActiveBenchmarkRefs(context.Context, uuid.UUID) (int64, error) {
	return m.refs, nil
}

type mockSuggestionRepo struct {
	candidates []uuid.UUID
	pending    []repository.Suggestion
	confirmRes repository.ConfirmResult
	rejected   int
}

func (m *mockSuggestionRepo) ReplaceForResume(_ context.Context, _, _ uuid.UUID, skillIDs []uuid.UUID) (int, error) {
	m.candidates = skillIDs
	return len(skillIDs), nil
}
func (m *mockSuggestionRepo) ListPendingByUser(context.Context, uuid.UUID) ([]repository.Suggestion, error) {
	return m.pending, nil
}
func (m *mockSuggestionRepo) Confirm(context.Context, uuid.UUID, []uuid.UUID, []uuid.UUID) (repository.ConfirmResult, error) {
	return m.confirmRes, nil
}
func (m *mockSuggestionRepo) RejectAllPending(context.Context, uuid.UUID) (int, error) {
	return m.rejected, nil
}

// fakeCache is an in-memory stand-in for the Redis wrapper.
type fakeCache struct {
	mu   sync.Mutex
	keys map[string]string
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{keys: make(map[string]string)}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.keys[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, err
	}
	return true, nil
}
func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.keys[key] = string(b)
	c.sets++
	return nil
}
func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.keys, key)
	return nil
}
func (c *fakeCache) DeleteByPattern(context.Context, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = make(map[string]string)
	return nil
}
func (c *fakeCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.keys[key]; ok {
		return false, nil
	}
	c.keys[key] = value
	return true, nil
}

func vocabSkill(name string) repository.Skill {
	return repository.Skill{ID: uuid.New(), Name: name, IsActive: true}
}

func TestSuggestion_UploadResume_MatchesAndFiltersOwned(t *testing.T) {
	react := vocabSkill("React")
	node := vocabSkill("Node.js")
	java := vocabSkill("Java")

	suggestions := &mockSuggestionRepo{}
	uc := NewSuggestionUsecase(
		&mockResumeRepo{},
		suggestions,
		&mockSkillRepo{active: []repository.Skill{react, node, java}},
		mockUserSkillRepo{ids: []uuid.UUID{react.ID}},
		mockExtractor{text: "Built UIs with React and APIs with Node.js"},
		newFakeCache(),
	)

	res, err := uc.UploadResume(context.Background(), uuid.New(), UploadResumeInput{
		FileName: "cv.txt",
		Content:  []byte("ignored, the extractor is mocked"),
	})
	if err != nil {
		t.Fatalf("UploadResume: %v", err)
	}
	if res.MatchedCount != 2 {
		t.Fatalf("expected 2 matches, got %d", res.MatchedCount)
	}
	if res.SuggestedCount != 1 {
		t.Fatalf("owned skill should be filtered, expected 1 suggestion, got %d", res.SuggestedCount)
	}
	if len(suggestions.candidates) != 1 || suggestions.candidates[0] != node.ID {
		t.Fatalf("expected only Node.js as candidate, got %v", suggestions.candidates)
	}
}

func TestSuggestion_UploadResume_ExtractionFailurePassesThrough(t *testing.T) {
	uc := NewSuggestionUsecase(
		&mockResumeRepo{},
		&mockSuggestionRepo{},
		&mockSkillRepo{},
		mockUserSkillRepo{},
		mockExtractor{err: apperr.Extraction("unsupported file type", nil)},
		nil,
	)

	_, err := uc.UploadResume(context.Background(), uuid.New(), UploadResumeInput{FileName: "cv.pdf"})
	if !apperr.Is(err, apperr.KindExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
}

func TestSuggestion_Rescan_UnknownResume(t *testing.T) {
	uc := NewSuggestionUsecase(
		&mockResumeRepo{getErr: repository.ErrResumeNotFound},
		&mockSuggestionRepo{},
		&mockSkillRepo{},
		mockUserSkillRepo{},
		mockExtractor{},
		nil,
	)

	_, err := uc.Rescan(context.Background(), uuid.New(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestSuggestion_Scan_LockHeldMeansConflict(t *testing.T) {
	resumeID := uuid.New()
	cache := newFakeCache()
	cache.keys["resume:scan:"+resumeID.String()] = "1"

	resumes := &mockResumeRepo{stored: repository.Resume{ID: resumeID, RawText: "Go and Redis"}}
	uc := NewSuggestionUsecase(resumes, &mockSuggestionRepo{}, &mockSkillRepo{}, mockUserSkillRepo{}, mockExtractor{}, cache)

	_, err := uc.Rescan(context.Background(), uuid.New(), resumeID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict while a scan is running, got %v", err)
	}
}

func TestSuggestion_Scan_ReleasesLock(t *testing.T) {
	resumeID := uuid.New()
	cache := newFakeCache()

	resumes := &mockResumeRepo{stored: repository.Resume{ID: resumeID, RawText: "nothing relevant"}}
	uc := NewSuggestionUsecase(resumes, &mockSuggestionRepo{}, &mockSkillRepo{}, mockUserSkillRepo{}, mockExtractor{}, cache)

	if _, err := uc.Rescan(context.Background(), uuid.New(), resumeID); err != nil {
		t.Fatalf("Rescan: %v", err)
	}
	if _, ok := cache.keys["resume:scan:"+resumeID.String()]; ok {
		t.Fatalf("scan guard key should be released after the scan")
	}
}

func TestSuggestion_Confirm_EmptyInput(t *testing.T) {
	uc := NewSuggestionUsecase(&mockResumeRepo{}, &mockSuggestionRepo{}, &mockSkillRepo{}, mockUserSkillRepo{}, mockExtractor{}, nil)

	_, err := uc.Confirm(context.Background(), uuid.New(), ConfirmInput{})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSuggestion_Confirm_ReportsCounts(t *testing.T) {
	uc := NewSuggestionUsecase(&mockResumeRepo{}, &mockSuggestionRepo{
		confirmRes: repository.ConfirmResult{AcceptedCount: 2, RejectedCount: 1, RemainingPending: 3},
	}, &mockSkillRepo{}, mockUserSkillRepo{}, mockExtractor{}, nil)

	out, err := uc.Confirm(context.Background(), uuid.New(), ConfirmInput{AcceptedIDs: []uuid.UUID{uuid.New()}})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if out.AcceptedCount != 2 || out.RejectedCount != 1 || out.RemainingPending != 3 {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestSuggestion_RejectAll(t *testing.T) {
	uc := NewSuggestionUsecase(&mockResumeRepo{}, &mockSuggestionRepo{rejected: 4}, &mockSkillRepo{}, mockUserSkillRepo{}, mockExtractor{}, nil)

	n, err := uc.RejectAll(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("RejectAll: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 rejected, got %d", n)
	}
}
