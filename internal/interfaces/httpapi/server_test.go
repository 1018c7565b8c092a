package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/vdsgame/vds-api/internal/domain/player"
	"github.com/vdsgame/vds-api/internal/infrastructure/repository/memory"
	idgen "github.com/vdsgame/vds-api/internal/platform/id"
	"github.com/vdsgame/vds-api/internal/platform/logging"
	"github.com/vdsgame/vds-api/internal/usecase"
)

const testJobToken = "test-job-token"

type stubProvider struct{}

func (stubProvider) AuthorizeURL(state string) string {
	return "https://auth.example/authorize?state=" + state
}

func (stubProvider) Exchange(_ context.Context, code string) (player.Identity, string, error) {
	return player.Identity{Provider: "reddit", SubjectID: "subject-" + code}, "rider_fan", nil
}

type testEnv struct {
	server      http.Handler
	playerRepo  *memory.PlayerRepository
	sessionRepo *memory.SessionRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logging.NewNop()
	gameRepo := memory.NewGameRepository(memory.SeedGames())
	riderRepo := memory.NewRiderRepository(memory.SeedRiders())
	raceRepo := memory.NewRaceRepository(memory.SeedRaces(), memory.SeedStages(), memory.SeedFinishers(), memory.SeedJerseys())
	rosterRepo := memory.NewRosterRepository(memory.SeedRiders())
	playerRepo := memory.NewPlayerRepository()
	sessionRepo := memory.NewSessionRepository()

	authService := usecase.NewAuthService(playerRepo, sessionRepo, stubProvider{}, idgen.NewRandomGenerator(), 0, logger)
	handler := NewHandler(
		usecase.NewGameService(gameRepo),
		usecase.NewRiderService(riderRepo, raceRepo, nil, logger),
		usecase.NewTeamService(rosterRepo, riderRepo, logger),
		usecase.NewScoringService(rosterRepo, riderRepo, raceRepo, playerRepo),
		usecase.NewRaceService(raceRepo),
		authService,
		usecase.NewRevalidateService(rosterRepo, riderRepo, 2, logger),
		SessionCookie{Name: "vds_session", MaxAge: 30 * 24 * time.Hour},
		"http://localhost:8000",
		logger,
	)

	return &testEnv{
		server:      NewServer(handler, authService, logger, []string{"*"}, testJobToken),
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
	}
}

// login creates a player and a live session, returning the session cookie.
func (env *testEnv) login(t *testing.T) (*http.Cookie, player.Player) {
	t.Helper()

	ctx := context.Background()
	p, _, err := env.playerRepo.Create(ctx, player.Player{
		Name:      "rider_fan",
		Identity:  player.Identity{Provider: "reddit", SubjectID: "subject-1"},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	session := player.Session{Token: "session-token-1", PlayerID: p.ID, CreatedAt: time.Now().UTC()}
	if _, err := env.sessionRepo.Save(ctx, session); err != nil {
		t.Fatalf("save session: %v", err)
	}

	return &http.Cookie{Name: "vds_session", Value: session.Token}, p
}

func (env *testEnv) do(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := sonic.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "healthy" {
		t.Fatalf("unexpected health payload: %v", body)
	}
}

func TestListGames(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/games", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body []gameDTO
	decodeBody(t, rec, &body)
	if len(body) != 2 {
		t.Fatalf("expected 2 games, got %d", len(body))
	}
}

func TestListRidersRejectsBadYear(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/riders/notayear/m", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body errorBody
	decodeBody(t, rec, &body)
	if body.Error == "" {
		t.Fatalf("expected an error message, got %q", rec.Body.String())
	}
}

func TestListRidersAppliesFilters(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/riders/2026/m?minPrice=24", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body []riderDTO
	decodeBody(t, rec, &body)
	if len(body) == 0 {
		t.Fatalf("expected premium riders in the seed data")
	}
	for _, item := range body {
		if item.Price < 24 {
			t.Fatalf("minPrice filter leaked rider %q at price %d", item.RiderName, item.Price)
		}
	}
}

func TestGetTeamRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/team/2026/m", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body errorBody
	decodeBody(t, rec, &body)
	if body.Error == "" {
		t.Fatalf("expected an error body, got %q", rec.Body.String())
	}
}

func TestUnknownSessionTokenRejected(t *testing.T) {
	env := newTestEnv(t)

	cookie := &http.Cookie{Name: "vds_session", Value: "no-such-token"}
	rec := env.do(t, http.MethodGet, "/api/team/2026/m", "", cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSaveAndGetTeam(t *testing.T) {
	env := newTestEnv(t)
	cookie, p := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/team/2026/m",
		`{"team_name":"Breakaway Kings","riders":["Tadej Strmec","Jonas Vester"]}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var saved saveTeamResponse
	decodeBody(t, rec, &saved)
	if saved.IsValid {
		t.Fatalf("two riders must not form a valid men's team")
	}
	if saved.PlayerID != p.ID {
		t.Fatalf("team owner mismatch: got %d want %d", saved.PlayerID, p.ID)
	}
	if len(saved.Roster) != 2 {
		t.Fatalf("expected 2 roster entries, got %d", len(saved.Roster))
	}
	wantErr := "Must have exactly 25 riders (currently 2)"
	found := false
	for _, e := range saved.Errors {
		if e == wantErr {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected error %q in %v", wantErr, saved.Errors)
	}

	rec = env.do(t, http.MethodGet, "/api/team/2026/m", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var fetched teamDTO
	decodeBody(t, rec, &fetched)
	if fetched.TeamName != "Breakaway Kings" || len(fetched.Roster) != 2 {
		t.Fatalf("unexpected team payload: %+v", fetched)
	}
}

func TestGetTeamReturnsNullWhenAbsent(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.login(t)

	rec := env.do(t, http.MethodGet, "/api/team/2026/f", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "null" {
		t.Fatalf("expected null body, got %q", got)
	}
}

func TestValidateEmptyRoster(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/team/2026/m/validate", `{"riders":[]}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body verdictDTO
	decodeBody(t, rec, &body)
	if body.IsValid {
		t.Fatalf("empty roster must be invalid")
	}
	if len(body.Errors) != 1 || body.Errors[0] != "No riders selected" {
		t.Fatalf("unexpected errors: %v", body.Errors)
	}
	if body.Warnings == nil || len(body.Warnings) != 0 {
		t.Fatalf("expected empty warnings list, got %v", body.Warnings)
	}
}

func TestRaceResultsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/races/3/results", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body raceResultsDTO
	decodeBody(t, rec, &body)
	if len(body.Results) == 0 {
		t.Fatalf("expected stage results for the seeded stage race")
	}

	rec = env.do(t, http.MethodGet, "/api/races/999/results", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown race, got %d", rec.Code)
	}
}

func TestAuthMeAndLogout(t *testing.T) {
	env := newTestEnv(t)
	cookie, p := env.login(t)

	rec := env.do(t, http.MethodGet, "/auth/me", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var me meDTO
	decodeBody(t, rec, &me)
	if me.PlayerID != p.ID || !me.Authenticated {
		t.Fatalf("unexpected me payload: %+v", me)
	}

	rec = env.do(t, http.MethodPost, "/auth/logout", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// The session is revoked server-side; the old cookie no longer works.
	rec = env.do(t, http.MethodGet, "/auth/me", "", cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestRedditLoginRedirects(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/auth/reddit", "", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "https://auth.example/authorize?state=") {
		t.Fatalf("unexpected redirect target: %q", location)
	}
}

func TestRevalidateJobTokenGate(t *testing.T) {
	env := newTestEnv(t)

	body := `{"year":2026,"division":"m"}`

	rec := env.do(t, http.MethodPost, "/api/internal/jobs/revalidate", body, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/internal/jobs/revalidate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec = httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}

	var result usecase.RevalidateResult
	decodeBody(t, rec, &result)
	if result.ErrorCount != 0 {
		t.Fatalf("unexpected errors in revalidate result: %+v", result)
	}
}

func TestRouteMiss404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/unknown", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
