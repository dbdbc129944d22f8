package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"littlestar/internal/database"
	"littlestar/internal/llm"
	"littlestar/internal/models"
	"littlestar/internal/repository"
	"littlestar/internal/security"
	"littlestar/internal/service"
	"littlestar/internal/store"
)

// testEnv wires real components (JSON store, sqlite, repositories) with a
// scriptable generation client, mirroring the production wiring in main.
type testEnv struct {
	mux   *http.ServeMux
	store *store.Store
	mock  *llm.MockClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	// Neutralize the quiet-hours window so tests pass at any wall-clock time.
	settings, err := st.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	settings.QuietHoursStart = "00:00"
	settings.QuietHoursEnd = "00:00"
	settings.DailyLimitMinutes = 10000
	if err := st.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("database.Initialize: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.InitSchema(); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}

	engagementRepo := repository.NewEngagementRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	tracker := service.NewEngagementTracker(engagementRepo)

	mock := &llm.MockClient{Text: "A gentle story about stars.", Audio: []byte("mp3")}
	sessions := service.NewSessionOrchestrator(st, mock, tracker, historyRepo)
	authService := service.NewAuthService(st, "test-secret", time.Hour, "")
	emailService, err := service.NewEmailService("", "", "")
	if err != nil {
		t.Fatalf("NewEmailService: %v", err)
	}

	middleware := NewMiddleware(authService, security.NewRateLimiter(100, time.Minute))
	childHandler := NewChildHandler(sessions, st)
	adminHandler := NewAdminHandler(authService, emailService, st, historyRepo, tracker)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/child/enter", childHandler.Enter)
	mux.HandleFunc("POST /api/child/activity/{kind}", childHandler.Activity)
	mux.HandleFunc("GET /api/child/progress", childHandler.Progress)
	mux.HandleFunc("GET /api/child/affirmations", childHandler.Affirmations)
	mux.HandleFunc("GET /api/child/lessons", childHandler.Lessons)
	mux.HandleFunc("POST /api/child/read-aloud", childHandler.ReadAloud)
	mux.HandleFunc("POST /api/admin/login", middleware.RateLimit(adminHandler.Login))
	mux.HandleFunc("GET /api/admin/settings", middleware.RequireParent(adminHandler.GetSettings))
	mux.HandleFunc("PUT /api/admin/settings", middleware.RequireParent(adminHandler.UpdateSettings))
	mux.HandleFunc("GET /api/admin/history", middleware.RequireParent(adminHandler.GetHistory))

	return &testEnv{mux: mux, store: st, mock: mock}
}

func (e *testEnv) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func TestActivityEndpointReturnsContent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/child/activity/story", `{"length":"short","topic":"space"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status     string                    `json:"status"`
		Text       string                    `json:"text"`
		StoryID    string                    `json:"story_id"`
		Engagement models.EngagementSnapshot `json:"engagement"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Text == "" {
		t.Errorf("response = %+v, want ok with text", resp)
	}
	if resp.StoryID == "" {
		t.Error("accepted story missing story_id")
	}
	if len(resp.Engagement.WinsToday) != 1 {
		t.Errorf("wins = %v, want one", resp.Engagement.WinsToday)
	}
}

func TestActivityEndpointUnknownKind(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/child/activity/juggling", `{}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestActivityEndpointFilterRejection(t *testing.T) {
	env := newTestEnv(t)
	env.mock.Text = "A scary story."

	settings, _ := env.store.Settings()
	settings.CustomWordFilters = []string{"scary"}
	if err := env.store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	rec := env.do(t, "POST", "/api/child/activity/story", `{"length":"short"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Status string `json:"status"`
		Text   string `json:"text"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "rejected" || resp.Text != "" {
		t.Errorf("response = %+v, want rejected without text", resp)
	}
}

func TestAffirmationsFallsBackToOther(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/child/affirmations?feeling=confused", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Feeling      string   `json:"feeling"`
		Affirmations []string `json:"affirmations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Affirmations) == 0 {
		t.Error("unknown feeling should fall back to the default list")
	}
}

func TestReadAloudReturnsAudio(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/child/read-aloud", `{"text":"hello stars"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Errorf("content type = %q, want audio/mpeg", got)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty audio body")
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	if rec := env.do(t, "GET", "/api/admin/settings", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated settings status = %d, want 401", rec.Code)
	}

	if rec := env.do(t, "POST", "/api/admin/login", `{"pin":"0000"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong PIN status = %d, want 401", rec.Code)
	}

	rec := env.do(t, "POST", "/api/admin/login", `{"pin":"1234"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no cookie")
	}

	rec = env.do(t, "GET", "/api/admin/settings", "", cookies[0])
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated settings status = %d", rec.Code)
	}
	var settings models.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings.AdminPIN != "" {
		t.Error("settings response leaks the PIN")
	}
}

func TestUpdateSettingsPreservesSecrets(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/admin/login", `{"pin":"1234"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	cookie := rec.Result().Cookies()[0]

	settings, _ := env.store.Settings()
	settings.AdminPIN = ""
	settings.DailyLimitMinutes = 30
	body, _ := json.Marshal(settings)

	rec = env.do(t, "PUT", "/api/admin/settings", string(body), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}

	saved, err := env.store.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if saved.AdminPIN != "1234" {
		t.Errorf("PIN after update = %q, want preserved", saved.AdminPIN)
	}
	if saved.DailyLimitMinutes != 30 {
		t.Errorf("daily limit = %d, want 30", saved.DailyLimitMinutes)
	}
}

func TestHistoryEndpointListsStories(t *testing.T) {
	env := newTestEnv(t)

	if rec := env.do(t, "POST", "/api/child/activity/story", `{"length":"short","topic":"space"}`); rec.Code != http.StatusOK {
		t.Fatalf("activity status = %d", rec.Code)
	}

	rec := env.do(t, "POST", "/api/admin/login", `{"pin":"1234"}`)
	cookie := rec.Result().Cookies()[0]

	rec = env.do(t, "GET", "/api/admin/history", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	var stories []models.StoryRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &stories); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(stories) != 1 {
		t.Errorf("got %d stories, want 1", len(stories))
	}
}
