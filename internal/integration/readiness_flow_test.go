package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"skill-ready/internal/config"
	"skill-ready/internal/database"
	"skill-ready/internal/database/migration"
	dbpostgres "skill-ready/internal/database/postgres"
	"skill-ready/internal/delivery/http/middleware"
	"skill-ready/internal/delivery/http/routes"
	"skill-ready/internal/domain/skill"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type scanResult struct {
	ResumeID       uuid.UUID `json:"resume_id"`
	MatchedCount   int       `json:"matched_count"`
	SuggestedCount int       `json:"suggested_count"`
}

type suggestionItem struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	Status    string    `json:"status"`
}

type confirmResult struct {
	AcceptedCount    int `json:"accepted_count"`
	RejectedCount    int `json:"rejected_count"`
	RemainingPending int `json:"remaining_pending"`
}

type snapshotResult struct {
	ID               uuid.UUID `json:"id"`
	TotalScore       float64   `json:"total_score"`
	MaxPossibleScore float64   `json:"max_possible_score"`
	Percentage       int       `json:"percentage"`
	Tier             string    `json:"tier"`
	Warning          string    `json:"warning"`
}

type reportResult struct {
	Snapshot snapshotResult `json:"snapshot"`
	Roadmap  []struct {
		SkillID   uuid.UUID `json:"skill_id"`
		SkillName string    `json:"skill_name"`
	} `json:"roadmap"`
}

func TestIntegration_ResumeToReadinessReport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedDummyData(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	app := newTestFiberApp(t, seed.cfg, db)

	tok := loginAndGetJWT(t, app)
	if tok == "" {
		t.Fatalf("login: empty access_token")
	}

	scan := uploadResume(t, app, tok, "Built frontends with React and backend services with Node.js.")
	if scan.MatchedCount != 2 {
		t.Fatalf("upload: expected matched_count=2, got %d", scan.MatchedCount)
	}
	if scan.SuggestedCount != 2 {
		t.Fatalf("upload: expected suggested_count=2, got %d", scan.SuggestedCount)
	}

	pending := listSuggestions(t, app, tok)
	if len(pending) != 2 {
		t.Fatalf("suggestions: expected 2 pending, got %d", len(pending))
	}
	// ListPending orders by skill name.
	if pending[0].SkillName != "Node.js" || pending[1].SkillName != "React" {
		t.Fatalf("suggestions: unexpected order %q, %q", pending[0].SkillName, pending[1].SkillName)
	}

	conf := confirmSuggestions(t, app, tok, []uuid.UUID{pending[0].SkillID, pending[1].SkillID}, nil)
	if conf.AcceptedCount != 2 {
		t.Fatalf("confirm: expected accepted_count=2, got %d", conf.AcceptedCount)
	}
	if conf.RemainingPending != 0 {
		t.Fatalf("confirm: expected remaining_pending=0, got %d", conf.RemainingPending)
	}

	snap := calculateReadiness(t, app, tok, seed.roleID)
	if snap.TotalScore != 15 || snap.MaxPossibleScore != 20 {
		t.Fatalf("readiness: expected 15/20, got %v/%v", snap.TotalScore, snap.MaxPossibleScore)
	}
	if snap.Percentage != 75 {
		t.Fatalf("readiness: expected percentage=75, got %d", snap.Percentage)
	}
	if snap.Tier != "READY" {
		t.Fatalf("readiness: expected tier=READY, got %s", snap.Tier)
	}
	if snap.Warning != "" {
		t.Fatalf("readiness: unexpected warning %q", snap.Warning)
	}

	rep := fetchReport(t, app, tok, seed.roleID)
	if rep.Snapshot.Tier != "READY" {
		t.Fatalf("report: expected latest tier READY, got %s", rep.Snapshot.Tier)
	}
	foundDocker := false
	for _, step := range rep.Roadmap {
		if step.SkillName == "Docker" {
			foundDocker = true
		}
	}
	if !foundDocker {
		t.Fatalf("report: expected Docker in the roadmap, got %+v", rep.Roadmap)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("SKILLREADY_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("SKILLREADY_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("SKILLREADY_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("SKILLREADY_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("SKILLREADY_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("SKILLREADY_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set SKILLREADY_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	migDir := resolveMigrationsDir(t)
	r := migration.Runner{Dir: migDir}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/readiness_flow_test.go
	// backend root: ../../
	backendRoot := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(backendRoot, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	files, _ := filepath.Glob(filepath.Join(migDir, "V*__*.sql"))
	if len(files) == 0 {
		t.Fatalf("resolve migrations dir: no migration files found in %s", migDir)
	}

	return migDir
}

type seededIDs struct {
	cfg      config.Config
	userID   uuid.UUID
	roleID   uuid.UUID
	skillIDs map[string]uuid.UUID
}

func seedDummyData(t *testing.T, ctx context.Context, db database.DB) seededIDs {
	t.Helper()

	jwtAccessSecret := stringsOrDefault(os.Getenv("SKILLREADY_TEST_JWT_ACCESS_SECRET"), "test-access-secret")
	jwtRefreshSecret := stringsOrDefault(os.Getenv("SKILLREADY_TEST_JWT_REFRESH_SECRET"), "test-refresh-secret")

	out := seededIDs{
		cfg: config.Config{
			App: config.AppConfig{AppName: "SkillReady", Environment: "test", HTTPPort: "0"},
			JWT: config.JWTConfig{
				AccessSecret:     jwtAccessSecret,
				RefreshSecret:    jwtRefreshSecret,
				AccessExpiresIn:  15 * time.Minute,
				RefreshExpiresIn: 24 * time.Hour,
			},
		},
		skillIDs: map[string]uuid.UUID{},
	}

	out.skillIDs["React"] = ensureSkill(t, ctx, db, "React")
	out.skillIDs["Node.js"] = ensureSkill(t, ctx, db, "Node.js")
	out.skillIDs["Docker"] = ensureSkill(t, ctx, db, "Docker")

	out.roleID = ensureRole(t, ctx, db, "Frontend Engineer (Integration Test)")

	ensureBenchmarkEntry(t, ctx, db, out.roleID, out.skillIDs["React"], 10, "required")
	ensureBenchmarkEntry(t, ctx, db, out.roleID, out.skillIDs["Node.js"], 5, "required")
	ensureBenchmarkEntry(t, ctx, db, out.roleID, out.skillIDs["Docker"], 5, "optional")

	out.userID = ensureUser(t, ctx, db, "readiness-it@example.com", "password")

	return out
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededIDs) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM snapshot_skill_breakdown WHERE snapshot_id IN (SELECT id FROM readiness_snapshots WHERE user_id = $1)`, seed.userID)
	_, _ = db.Exec(ctx, `DELETE FROM readiness_snapshots WHERE user_id = $1`, seed.userID)
	_, _ = db.Exec(ctx, `DELETE FROM skill_suggestions WHERE user_id = $1`, seed.userID)
	_, _ = db.Exec(ctx, `DELETE FROM resumes WHERE user_id = $1`, seed.userID)
	_, _ = db.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, seed.userID)
	_, _ = db.Exec(ctx, `DELETE FROM users WHERE id = $1`, seed.userID)
	_, _ = db.Exec(ctx, `DELETE FROM role_benchmarks WHERE role_id = $1`, seed.roleID)
	_, _ = db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, seed.roleID)
}

func newTestFiberApp(t *testing.T, cfg config.Config, db database.DB) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{})
	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())

	routes.Register(app, routes.Deps{Config: cfg, DB: db})
	return app
}

func loginAndGetJWT(t *testing.T, app *fiber.App) string {
	t.Helper()

	body := map[string]string{"email": "readiness-it@example.com", "password": "password"}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	sr := doJSON(t, app, req, 200)

	var m map[string]json.RawMessage
	if err := json.Unmarshal(sr.Data, &m); err != nil {
		t.Fatalf("login: data unmarshal error: %v", err)
	}
	var token string
	if raw, ok := m["access_token"]; ok {
		_ = json.Unmarshal(raw, &token)
	}
	if token == "" {
		t.Fatalf("login: missing access_token")
	}
	return token
}

func uploadResume(t *testing.T, app *fiber.App, jwt, text string) scanResult {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "cv.txt")
	if err != nil {
		t.Fatalf("upload: create form file: %v", err)
	}
	if _, err := fw.Write([]byte(text)); err != nil {
		t.Fatalf("upload: write form file: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/api/v1/me/resumes", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+jwt)

	sr := doJSON(t, app, req, 201)

	var out scanResult
	if err := json.Unmarshal(sr.Data, &out); err != nil {
		t.Fatalf("upload: data unmarshal error: %v", err)
	}
	return out
}

func listSuggestions(t *testing.T, app *fiber.App, jwt string) []suggestionItem {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/me/suggestions", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)

	sr := doJSON(t, app, req, 200)

	var items []suggestionItem
	if err := json.Unmarshal(sr.Data, &items); err != nil {
		t.Fatalf("suggestions: data unmarshal error: %v", err)
	}
	return items
}

func confirmSuggestions(t *testing.T, app *fiber.App, jwt string, accepted, rejected []uuid.UUID) confirmResult {
	t.Helper()

	body := map[string]any{"accepted_ids": accepted, "rejected_ids": rejected}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/me/suggestions/confirm", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+jwt)

	sr := doJSON(t, app, req, 200)

	var out confirmResult
	if err := json.Unmarshal(sr.Data, &out); err != nil {
		t.Fatalf("confirm: data unmarshal error: %v", err)
	}
	return out
}

func calculateReadiness(t *testing.T, app *fiber.App, jwt string, roleID uuid.UUID) snapshotResult {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/v1/me/readiness/"+roleID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+jwt)

	sr := doJSON(t, app, req, 201)

	var out snapshotResult
	if err := json.Unmarshal(sr.Data, &out); err != nil {
		t.Fatalf("readiness: data unmarshal error: %v", err)
	}
	return out
}

func fetchReport(t *testing.T, app *fiber.App, jwt string, roleID uuid.UUID) reportResult {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/me/readiness/"+roleID.String()+"/report", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)

	sr := doJSON(t, app, req, 200)

	var out reportResult
	if err := json.Unmarshal(sr.Data, &out); err != nil {
		t.Fatalf("report: data unmarshal error: %v", err)
	}
	return out
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request, wantStatus int) semanticResponse {
	t.Helper()

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: request error: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s: decode error: %v", req.Method, req.URL.Path, err)
	}
	if sr.Status != wantStatus {
		t.Fatalf("%s %s: expected status=%d, got %d (message=%s)", req.Method, req.URL.Path, wantStatus, sr.Status, sr.Message)
	}
	return sr
}

func ensureSkill(t *testing.T, ctx context.Context, db database.DB, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO skills (id, name, normalized_name, domain, is_active)
		 VALUES ($1,$2,$3,$4,true)
		 ON CONFLICT (normalized_name) DO NOTHING`,
		id, name, skill.Normalize(name), "integration-test",
	)
	if err != nil {
		t.Fatalf("seed skill %s: %v", name, err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM skills WHERE normalized_name = $1 LIMIT 1`, skill.Normalize(name))
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed skill select %s: %v", name, err)
	}
	return got
}

func ensureRole(t *testing.T, ctx context.Context, db database.DB, title string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO roles (id, title, description, is_active)
		 VALUES ($1,$2,$3,true)
		 ON CONFLICT (title) DO NOTHING`,
		id, title, "seeded by the integration test",
	)
	if err != nil {
		t.Fatalf("seed role: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM roles WHERE title = $1 LIMIT 1`, title)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed role select: %v", err)
	}
	return got
}

func ensureBenchmarkEntry(t *testing.T, ctx context.Context, db database.DB, roleID, skillID uuid.UUID, weight float64, importance string) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO role_benchmarks (id, role_id, skill_id, importance, weight, is_active)
		 VALUES ($1,$2,$3,$4,$5,true)
		 ON CONFLICT (role_id, skill_id) DO UPDATE SET
			importance = EXCLUDED.importance,
			weight = EXCLUDED.weight,
			is_active = EXCLUDED.is_active`,
		uuid.New(), roleID, skillID, importance, weight,
	)
	if err != nil {
		t.Fatalf("seed benchmark entry: %v", err)
	}
}

func ensureUser(t *testing.T, ctx context.Context, db database.DB, email, password string) uuid.UUID {
	t.Helper()

	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("seed user: bcrypt error: %v", err)
	}

	id := uuid.New()
	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1,$2,$3)
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
		id, email, string(pwHash),
	)
	if err != nil {
		t.Fatalf("seed user insert: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1 LIMIT 1`, email)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed user select: %v", err)
	}
	return got
}

func stringsOrDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
