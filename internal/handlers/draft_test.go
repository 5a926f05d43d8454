// internal/handlers/draft_test.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfdraft-io/golfdraft/internal/draft"
	"github.com/golfdraft-io/golfdraft/internal/snapshot"
	draftsync "github.com/golfdraft-io/golfdraft/internal/sync"
)

func setupTestServer(t *testing.T) *DraftServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	d := draft.NewDraft("Test Open", 2, draft.FormatSnake)
	d.SeedPlayers(draft.DefaultPool())
	coord := draftsync.NewCoordinator(d, nil, nil, logger)
	return NewDraftServer(coord, logger)
}

func TestGetStateHandler(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	GetStateHandler(s)(rec, httptest.NewRequest(http.MethodGet, "/draft/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var snap snapshot.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "Test Open", snap.Tournament)
	assert.Equal(t, 2, snap.TeamCount)
	assert.False(t, snap.IsActive)
}

func TestGetStateHandlerRejectsWrongMethod(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	GetStateHandler(s)(rec, httptest.NewRequest(http.MethodPost, "/draft/state", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListPlayersHandler(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	ListPlayersHandler(s)(rec, httptest.NewRequest(http.MethodGet, "/draft/players", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var players []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &players))
	assert.Len(t, players, len(draft.DefaultPool()))
}

func TestSubmitPickHandler(t *testing.T) {
	s := setupTestServer(t)
	s.CurrentDraft().StartDraft()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/draft/pick", strings.NewReader(`{"playerId":"jon-rahm"}`))
	SubmitPickHandler(s)(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, s.CurrentDraft().CurrentPick)
	assert.True(t, s.CurrentDraft().DraftedPlayers["jon-rahm"])
}

func TestSubmitPickHandlerRequiresPlayerID(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/draft/pick", strings.NewReader(`{}`))
	SubmitPickHandler(s)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitPickHandlerRejectsBadJSON(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/draft/pick", strings.NewReader(`not json`))
	SubmitPickHandler(s)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartAndResetHandlers(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	StartDraftHandler(s)(rec, httptest.NewRequest(http.MethodPost, "/draft/start", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.CurrentDraft().IsActive)

	rec = httptest.NewRecorder()
	ResetBoardHandler(s)(rec, httptest.NewRequest(http.MethodPost, "/draft/reset", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, s.CurrentDraft().IsActive)
	assert.Equal(t, 0, s.CurrentDraft().CurrentPick)
}

func TestSetTeamCountHandlerClamps(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/draft/teams/count", strings.NewReader(`{"teamCount":9}`))
	SetTeamCountHandler(s)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, draft.MaxTeams, s.CurrentDraft().TeamCount)
}

func TestRenameTeamHandler(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/draft/teams/rename", strings.NewReader(`{"teamNum":1,"name":"  Weekend   Warriors "}`))
	RenameTeamHandler(s)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Weekend Warriors", s.CurrentDraft().TeamName(1))
}

func TestAddPlayerHandler(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/draft/players/add", strings.NewReader(`{"name":"Viktor Hovland","odds":"+1400","tier":2}`))
	AddPlayerHandler(s)(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "viktor-hovland", resp["id"])
}

func TestAddPlayerHandlerRejectsBadTier(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/draft/players/add", strings.NewReader(`{"name":"Viktor Hovland","tier":0}`))
	AddPlayerHandler(s)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetScoreHandler(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/draft/scores", strings.NewReader(`{"playerId":"jon-rahm","roundIndex":0,"value":"-3"}`))
	SetScoreHandler(s)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -3, s.CurrentDraft().Scores.Total("jon-rahm"))
}

func TestHistoryHandlerWithoutStoreReturnsEmptyList(t *testing.T) {
	s := setupTestServer(t)

	rec := httptest.NewRecorder()
	HistoryHandler(s)(rec, httptest.NewRequest(http.MethodGet, "/draft/history", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
