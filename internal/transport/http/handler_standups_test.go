package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standup-tracker/internal/domain/entity"
	"standup-tracker/internal/domain/service"
)

// fakeAuthService accepts a single token and returns a fixed session.
type fakeAuthService struct {
	token   string
	session *entity.Session
	user    *entity.User
}

func (f *fakeAuthService) ExchangeCode(ctx context.Context, code string) (*service.AuthResult, error) {
	return nil, fmt.Errorf("%w: not implemented", entity.ErrValidation)
}

func (f *fakeAuthService) ValidateToken(ctx context.Context, token string) (*entity.Session, error) {
	if token != f.token {
		return nil, fmt.Errorf("%w: bad token", entity.ErrUnauthorized)
	}
	return f.session, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, token string) error {
	return nil
}

func (f *fakeAuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, entity.ErrNotFound
	}
	cp := *f.user
	return &cp, nil
}

func (f *fakeAuthService) UpdateReminders(ctx context.Context, userID string, enabled bool) (*entity.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, entity.ErrNotFound
	}
	f.user.RemindersEnabled = enabled
	cp := *f.user
	return &cp, nil
}

// fakeStandupService is an in-memory StandupService.
type fakeStandupService struct {
	entries map[uuid.UUID]*entity.StandupEntry
}

func newFakeStandupService() *fakeStandupService {
	return &fakeStandupService{entries: make(map[uuid.UUID]*entity.StandupEntry)}
}

func (f *fakeStandupService) CreateStandup(ctx context.Context, userID string, in service.CreateStandupInput) (*entity.StandupEntry, error) {
	if in.WorkCompleted == "" {
		return nil, fmt.Errorf("%w: workCompleted is required", entity.ErrValidation)
	}
	blockers := in.Blockers
	if blockers == "" {
		blockers = entity.DefaultBlockers
	}
	e := &entity.StandupEntry{
		ID:            uuid.New(),
		UserID:        userID,
		RepoFullName:  in.RepoFullName,
		Date:          in.Date,
		WorkCompleted: in.WorkCompleted,
		WorkPlanned:   in.WorkPlanned,
		Blockers:      blockers,
		TaskIDs:       in.TaskIDs,
		Commits:       in.Commits,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeStandupService) GetStandup(ctx context.Context, id uuid.UUID) (*entity.StandupEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return e, nil
}

func (f *fakeStandupService) ListStandups(ctx context.Context, userID string) ([]*entity.StandupEntry, error) {
	var out []*entity.StandupEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStandupService) UpdateStandup(ctx context.Context, id uuid.UUID, upd entity.StandupUpdate) (*entity.StandupEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	if upd.WorkCompleted != nil {
		e.WorkCompleted = *upd.WorkCompleted
	}
	return e, nil
}

func (f *fakeStandupService) DeleteStandup(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.entries[id]; !ok {
		return entity.ErrNotFound
	}
	delete(f.entries, id)
	return nil
}

// fakePlanningService stubs the milestone lookup; the remaining planning
// routes are not exercised here.
type fakePlanningService struct {
	service.PlanningService
	milestones map[uuid.UUID]*entity.Milestone
}

func (f *fakePlanningService) GetMilestone(ctx context.Context, id uuid.UUID) (*entity.Milestone, error) {
	m, ok := f.milestones[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return m, nil
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeStandupService) {
	srv, standups, _ := newTestServerFull(t)
	return srv, standups
}

func newTestServerFull(t *testing.T) (*httptest.Server, *fakeStandupService, *fakePlanningService) {
	t.Helper()
	standups := newFakeStandupService()
	planning := &fakePlanningService{milestones: make(map[uuid.UUID]*entity.Milestone)}
	auth := &fakeAuthService{
		token: "good-token",
		session: &entity.Session{
			ID:        "s1",
			UserID:    "42",
			Login:     "octocat",
			ExpiresAt: time.Now().Add(time.Hour),
		},
		user: &entity.User{ID: "42", Login: "octocat", Name: "The Octocat"},
	}
	logger := slogDiscard()
	srv := httptest.NewServer(NewRouter(auth, standups, planning, logger))
	t.Cleanup(srv.Close)
	return srv, standups, planning
}

func doRequest(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestStandups_RequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/standups", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/standups", "wrong-token", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStandups_CreateAndList(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"repoFullName":"octocat/widgets","date":"2026-02-03","workCompleted":"things","workPlanned":"more things","blockers":""}`
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/standups", "good-token", body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created standupDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "42", created.UserID)
	assert.Equal(t, "None", created.Blockers)
	assert.NotEmpty(t, created.ID)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/standups", "good-token", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []standupDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestStandups_CreateValidationError(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"repoFullName":"octocat/widgets","date":"2026-02-03"}`
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/standups", "good-token", body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "Invalid request", errBody.Error)
	assert.Contains(t, errBody.Details, "workCompleted")
}

func TestStandups_UserIDMismatch(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/standups?userId=999", "good-token", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStandups_GetByID(t *testing.T) {
	srv, standups := newTestServer(t)

	own := &entity.StandupEntry{ID: uuid.New(), UserID: "42", Date: "2026-02-03", WorkCompleted: "things"}
	standups.entries[own.ID] = own
	foreign := &entity.StandupEntry{ID: uuid.New(), UserID: "999", Date: "2026-02-03"}
	standups.entries[foreign.ID] = foreign

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/standups/"+own.ID.String(), "good-token", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got standupDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, own.ID.String(), got.ID)
	assert.Equal(t, "things", got.WorkCompleted)

	// Another user's entry and an unknown id both answer 404.
	resp = doRequest(t, http.MethodGet, srv.URL+"/api/standups/"+foreign.ID.String(), "good-token", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/standups/"+uuid.NewString(), "good-token", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMilestones_GetByID(t *testing.T) {
	srv, _, planning := newTestServerFull(t)

	own := &entity.Milestone{ID: uuid.New(), UserID: "42", Title: "Ship v1"}
	planning.milestones[own.ID] = own
	foreign := &entity.Milestone{ID: uuid.New(), UserID: "999", Title: "Not yours"}
	planning.milestones[foreign.ID] = foreign

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/milestones/"+own.ID.String(), "good-token", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got milestoneDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Ship v1", got.Title)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/milestones/"+foreign.ID.String(), "good-token", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsersMe_ToggleReminders(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/users/me", "good-token", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me userDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.False(t, me.RemindersEnabled)

	resp = doRequest(t, http.MethodPut, srv.URL+"/api/users/me", "good-token", `{"remindersEnabled":true}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.True(t, me.RemindersEnabled)

	// The flag is required; an empty body is rejected.
	resp = doRequest(t, http.MethodPut, srv.URL+"/api/users/me", "good-token", `{}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/users/me", "good-token", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.True(t, me.RemindersEnabled)
}

func TestStandups_UpdateForeignEntryHidden(t *testing.T) {
	srv, standups := newTestServer(t)

	// Entry owned by a different user must look like it does not exist.
	other := &entity.StandupEntry{ID: uuid.New(), UserID: "999", Date: "2026-02-03"}
	standups.entries[other.ID] = other

	body := `{"workCompleted":"stolen"}`
	resp := doRequest(t, http.MethodPut, srv.URL+"/api/standups/"+other.ID.String(), "good-token", body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStandups_DeleteBadID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodDelete, srv.URL+"/api/standups/not-a-uuid", "good-token", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStandups_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPatch, srv.URL+"/api/standups", "good-token", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/health", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
