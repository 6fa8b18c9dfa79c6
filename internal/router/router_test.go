package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kanban-board-api/internal/database"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/service"
)

const basePath = "/api/kanban"

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

// setupTestRouter creates a router over an isolated in-memory SQLite database
func setupTestRouter(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.New(database.Config{
		Driver:       database.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	t.Cleanup(func() { _ = database.Close(db) })

	logger := zap.NewNop()
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, logger)
	tokens := service.NewTokenService("test-secret", time.Hour, service.NewMemoryTokenBlacklist(), logger)

	engine := Setup(Config{
		DB:           db,
		Logger:       logger,
		TokenService: tokens,
		BasePath:     basePath,
		CORSOrigins:  "*",
		Metrics:      m,
		Gatherer:     registry,
	})
	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, basePath+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// signUp registers and logs in, returning the user id and token
func (s *testServer) signUp(username string) (uuid.UUID, string) {
	s.t.Helper()
	email := username + "@example.com"
	w := s.do(http.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Username: username, Email: email, Password: "password", ConfirmPassword: "password",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: email, Password: "password"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var tok dto.TokenResponse
	decodeData(s.t, w, &tok)
	return tok.User.ID, tok.AccessToken
}

func TestProbesAndMetrics(t *testing.T) {
	s := setupTestRouter(t)

	for _, path := range []string{"/health", "/ready", "/metrics", basePath + "/health", basePath + "/metrics"} {
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.True(t, strings.Contains(w.Body.String(), "kanban_service_"), "metrics use the service namespace")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := setupTestRouter(t)

	w := s.do(http.MethodGet, "/boards", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/boards", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBoardLifecycle(t *testing.T) {
	s := setupTestRouter(t)
	_, aliceToken := s.signUp("alice")
	bobID, bobToken := s.signUp("bob")

	w := s.do(http.MethodPost, "/boards", aliceToken, dto.CreateBoardRequest{Title: "Test Board"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var board dto.BoardDetailResponse
	decodeData(t, w, &board)
	require.Len(t, board.Columns, 3)
	assert.Equal(t, "To Do", board.Columns[0].Title)
	assert.Equal(t, "In Progress", board.Columns[1].Title)
	assert.Equal(t, "Done", board.Columns[2].Title)
	todo := board.Columns[0].ID
	done := board.Columns[2].ID

	// bob has no access yet
	w = s.do(http.MethodGet, "/boards/"+board.ID.String(), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var cards []dto.CardResponse
	for _, title := range []string{"first", "second", "third"} {
		w = s.do(http.MethodPost, "/columns/"+todo.String()+"/cards", aliceToken, dto.CreateCardRequest{Title: title})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var card dto.CardResponse
		decodeData(t, w, &card)
		cards = append(cards, card)
	}
	assert.Equal(t, 2, cards[2].Position)

	w = s.do(http.MethodPost, "/boards/"+board.ID.String()+"/shares", aliceToken,
		dto.ShareBoardRequest{Email: "BOB@example.com", Level: "view"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/boards/"+board.ID.String()+"/shares", aliceToken,
		dto.ShareBoardRequest{Email: "bob@example.com", Level: "edit"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var again dto.ShareBoardResponse
	decodeData(t, w, &again)
	assert.True(t, again.AlreadyShared)
	assert.Equal(t, "view", again.Share.Level)

	// a viewer can read but not move
	w = s.do(http.MethodGet, "/boards/"+board.ID.String(), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	zero := 0
	w = s.do(http.MethodPost, "/cards/"+cards[0].ID.String()+"/move", bobToken,
		dto.MoveCardRequest{ColumnID: &done, Position: &zero})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, "/boards/"+board.ID.String()+"/shares/"+bobID.String(), aliceToken,
		dto.UpdateShareRequest{Level: "edit"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/cards/"+cards[0].ID.String()+"/move", bobToken,
		dto.MoveCardRequest{ColumnID: &done, Position: &zero})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/boards/"+board.ID.String(), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &board)
	assert.Equal(t, "edit", board.AccessLevel)
	require.Len(t, board.Columns[0].Cards, 2)
	assert.Equal(t, "second", board.Columns[0].Cards[0].Title)
	assert.Equal(t, 0, board.Columns[0].Cards[0].Position)
	assert.Equal(t, 1, board.Columns[0].Cards[1].Position)
	require.Len(t, board.Columns[2].Cards, 1)
	assert.Equal(t, "first", board.Columns[2].Cards[0].Title)

	// only the owner deletes
	w = s.do(http.MethodDelete, "/boards/"+board.ID.String(), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/boards", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.BoardListResponse
	decodeData(t, w, &list)
	assert.Empty(t, list.Owned)
	require.Len(t, list.Shared, 1)
	assert.Equal(t, board.ID, list.Shared[0].ID)

	w = s.do(http.MethodDelete, "/boards/"+board.ID.String(), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/boards/"+board.ID.String(), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := setupTestRouter(t)
	_, token := s.signUp("carol")

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/me", token, nil).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/auth/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/me", token, nil).Code)
}

func TestDisplayPreference(t *testing.T) {
	s := setupTestRouter(t)
	_, token := s.signUp("dave")

	on := true
	w := s.do(http.MethodPut, "/me/settings", token, dto.UpdateSettingsRequest{DarkMode: &on})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/me", token, nil)
	var me dto.UserResponse
	decodeData(t, w, &me)
	assert.True(t, me.DarkMode)
}

func TestDuplicateRegistration(t *testing.T) {
	s := setupTestRouter(t)
	s.signUp("erin")

	w := s.do(http.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Username: "erin", Email: "other@example.com", Password: "pw", ConfirmPassword: "pw",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}
