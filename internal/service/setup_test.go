package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/database"
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/repository"
)

// testEnv wires every service over an isolated in-memory SQLite database
type testEnv struct {
	db      *gorm.DB
	repos   *repository.Repositories
	boards  BoardService
	columns ColumnService
	cards   CardService
	shares  ShareService
	users   UserService
	tokens  TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithNotifier(t, nil)
}

func newTestEnvWithNotifier(t *testing.T, notifier client.NotificationClient) *testEnv {
	t.Helper()
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
	repos := repository.NewRepositories(db)
	uow := repository.NewUnitOfWork(db)
	access := NewAccessService()
	tokens := NewTokenService("test-secret", time.Hour, NewMemoryTokenBlacklist(), logger)

	return &testEnv{
		db:      db,
		repos:   repos,
		boards:  NewBoardService(repos, uow, access, nil, logger),
		columns: NewColumnService(uow, access, logger),
		cards:   NewCardService(uow, access, nil, logger),
		shares:  NewShareService(repos, uow, access, notifier, nil, logger),
		users:   NewUserService(repos.Users, tokens, nil, logger),
		tokens:  tokens,
	}
}

// createUser inserts a user directly with a cheap password hash
func (e *testEnv) createUser(t *testing.T, username string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{Username: username, Email: username + "@example.com", PasswordHash: string(hash)}
	require.NoError(t, e.repos.Users.Create(context.Background(), user))
	return user
}

func (e *testEnv) createBoard(t *testing.T, owner uuid.UUID, title string) *dto.BoardDetailResponse {
	t.Helper()
	board, err := e.boards.CreateBoard(context.Background(), owner, &dto.CreateBoardRequest{Title: title})
	require.NoError(t, err)
	return board
}

func (e *testEnv) createCards(t *testing.T, actor, columnID uuid.UUID, titles ...string) []*dto.CardResponse {
	t.Helper()
	cards := make([]*dto.CardResponse, 0, len(titles))
	for _, title := range titles {
		card, err := e.cards.CreateCard(context.Background(), actor, columnID, &dto.CreateCardRequest{Title: title})
		require.NoError(t, err)
		cards = append(cards, card)
	}
	return cards
}

// cardTitles returns the column's card titles in position order
func (e *testEnv) cardTitles(t *testing.T, columnID uuid.UUID) []string {
	t.Helper()
	cards, err := e.repos.Cards.FindByColumn(context.Background(), columnID)
	require.NoError(t, err)
	titles := make([]string, len(cards))
	for i, c := range cards {
		require.Equal(t, i, c.Position, "positions of %s are not dense", columnID)
		titles[i] = c.Title
	}
	return titles
}

func (e *testEnv) share(t *testing.T, owner, boardID uuid.UUID, email, level string) *dto.ShareBoardResponse {
	t.Helper()
	result, err := e.shares.ShareBoard(context.Background(), owner, boardID, &dto.ShareBoardRequest{Email: email, Level: level})
	require.NoError(t, err)
	return result
}

func intPtr(v int) *int { return &v }

func uuidPtr(v uuid.UUID) *uuid.UUID { return &v }
