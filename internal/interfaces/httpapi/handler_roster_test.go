package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/sportorg/competition-api/internal/domain/auth"
	"github.com/sportorg/competition-api/internal/domain/eligibility"
	"github.com/sportorg/competition-api/internal/infrastructure/repository/memory"
	idgen "github.com/sportorg/competition-api/internal/platform/id"
	"github.com/sportorg/competition-api/internal/usecase"
)

type stubVerifier struct {
	principal auth.Principal
	err       error
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, _ string) (auth.Principal, error) {
	return v.principal, v.err
}

func newTestRouter(t *testing.T, verifier TokenVerifier) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rules := eligibility.DefaultRules()
	generator := idgen.NewRandomGenerator()

	clubRepo := memory.NewClubRepository(memory.SeedClubs())
	placeRepo := memory.NewPlaceRepository(memory.SeedPlaces())
	groupRepo := memory.NewGroupRepository(memory.SeedGroups())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	competitionRepo := memory.NewCompetitionRepository(memory.SeedCompetitions())
	registrationRepo := memory.NewRegistrationRepository(nil)

	handler := NewHandler(
		usecase.NewClubService(clubRepo, placeRepo),
		usecase.NewPlayerService(clubRepo, groupRepo, playerRepo, generator, logger),
		usecase.NewCompetitionService(competitionRepo, groupRepo, playerRepo, rules, generator, logger),
		usecase.NewRosterService(competitionRepo, playerRepo, registrationRepo, rules, generator, logger),
		usecase.NewDashboardService(clubRepo, placeRepo, groupRepo, competitionRepo, playerRepo, registrationRepo),
		usecase.NewEligibilityAuditService(competitionRepo, playerRepo, registrationRepo, rules, logger),
		logger,
	)

	return NewRouter(handler, verifier, logger, []string{"*"}, "job-token")
}

func TestRouter_SyncRoster(t *testing.T) {
	verifier := stubVerifier{principal: auth.Principal{UserID: "user-1", Role: auth.RoleAdmin}}
	router := newTestRouter(t, verifier)

	body := `{"club_id":"` + memory.ClubIDNorthside + `","group_id":"` + memory.GroupIDMen + `","player_ids":["north-p01","north-p02"],"captain_player_id":"north-p01"}`
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/v1/competitions/%s/roster/sync", memory.CompetitionIDSeniorLeague),
		strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data reconciliationResultDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data.Applied) != 2 {
		t.Fatalf("expected 2 applied changes, got %+v", envelope.Data)
	}
}

func TestRouter_SyncRoster_RequiresAuth(t *testing.T) {
	verifier := stubVerifier{principal: auth.Principal{UserID: "user-1", Role: auth.RoleAdmin}}
	router := newTestRouter(t, verifier)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/v1/competitions/%s/roster/sync", memory.CompetitionIDSeniorLeague),
		strings.NewReader(`{"club_id":"x"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without bearer token, got %d", rec.Code)
	}
}

func TestRouter_ListEligiblePlayers_Public(t *testing.T) {
	router := newTestRouter(t, stubVerifier{})

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/v1/competitions/%s/clubs/%s/eligible-players", memory.CompetitionIDU12Cup, memory.ClubIDNorthside),
		nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []playerEligibilityDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) == 0 {
		t.Fatal("expected eligibility verdicts for club players")
	}
}

func TestRouter_ListEligiblePlayers_GroupFilter(t *testing.T) {
	router := newTestRouter(t, stubVerifier{})

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/v1/competitions/%s/clubs/%s/eligible-players?group_id=%s",
			memory.CompetitionIDU12Cup, memory.ClubIDNorthside, memory.GroupIDU12),
		nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []playerEligibilityDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	for _, v := range envelope.Data {
		if v.Status != string(eligibility.StatusEligible) {
			continue
		}
		if len(v.QualifyingGroups) != 1 || v.QualifyingGroups[0].GroupID != memory.GroupIDU12 {
			t.Fatalf("eligible verdict not scoped to requested group: %+v", v)
		}
	}

	// A group that is not attached to the competition is rejected.
	req = httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/v1/competitions/%s/clubs/%s/eligible-players?group_id=%s",
			memory.CompetitionIDU12Cup, memory.ClubIDNorthside, memory.GroupIDMen),
		nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unattached group, got %d", rec.Code)
	}
}

func TestRouter_EligibilityAuditJob_RequiresToken(t *testing.T) {
	router := newTestRouter(t, stubVerifier{})

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/eligibility-audit", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without job token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/eligibility-audit", strings.NewReader(`{}`))
	req.Header.Set("X-Internal-Job-Token", "job-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with job token, got %d: %s", rec.Code, rec.Body.String())
	}
}
