package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardDetailResponse, error)
	GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error)
	ListBoards(ctx context.Context, userID uuid.UUID) (*dto.BoardListResponse, error)
	DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	repos   *repository.Repositories
	uow     repository.UnitOfWork
	access  AccessService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	repos *repository.Repositories,
	uow repository.UnitOfWork,
	access AccessService,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		repos:   repos,
		uow:     uow,
		access:  access,
		metrics: m,
		logger:  logger,
	}
}

// CreateBoard creates a board with the default columns
func (s *boardServiceImpl) CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardDetailResponse, error) {
	title, err := normalizeTitle("Title", req.Title)
	if err != nil {
		return nil, err
	}

	board := &domain.Board{Title: title, OwnerID: userID}
	err = s.uow.Do(ctx, func(tx *repository.Repositories) error {
		if err := tx.Boards.Create(ctx, board); err != nil {
			return response.NewInternalError("Failed to create board", err)
		}
		for i, columnTitle := range domain.DefaultColumnTitles {
			column := domain.Column{Title: columnTitle, Position: i, BoardID: board.ID}
			if err := tx.Columns.Create(ctx, &column); err != nil {
				return response.NewInternalError("Failed to create default columns", err)
			}
			board.Columns = append(board.Columns, column)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementBoardCreated()
	}

	s.logger.Info("Board created",
		zap.String("board_id", board.ID.String()),
		zap.String("owner_id", userID.String()),
	)

	return toBoardDetail(board, domain.AccessOwn), nil
}

// GetBoard returns the board with ordered columns and cards for any user with view access
func (s *boardServiceImpl) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error) {
	_, level, err := s.access.Require(ctx, s.repos, boardID, userID, domain.AccessView)
	if err != nil {
		return nil, err
	}

	board, err := s.repos.Boards.FindWithContents(ctx, boardID)
	if err != nil {
		return nil, notFoundOr(err, "Board not found", "Failed to fetch board")
	}

	return toBoardDetail(board, level), nil
}

// ListBoards returns the boards the user owns and the boards shared with them
func (s *boardServiceImpl) ListBoards(ctx context.Context, userID uuid.UUID) (*dto.BoardListResponse, error) {
	owned, err := s.repos.Boards.FindByOwner(ctx, userID)
	if err != nil {
		return nil, response.NewInternalError("Failed to fetch boards", err)
	}
	shared, err := s.repos.Boards.FindSharedWith(ctx, userID)
	if err != nil {
		return nil, response.NewInternalError("Failed to fetch shared boards", err)
	}

	result := &dto.BoardListResponse{
		Owned:  make([]dto.BoardSummaryResponse, 0, len(owned)),
		Shared: make([]dto.BoardSummaryResponse, 0, len(shared)),
	}
	for i := range owned {
		result.Owned = append(result.Owned, toBoardSummary(&owned[i], domain.AccessOwn))
	}
	for i := range shared {
		share, err := s.repos.Shares.Find(ctx, shared[i].ID, userID)
		if err != nil {
			return nil, response.NewInternalError("Failed to fetch board share", err)
		}
		level := s.access.Evaluate(&shared[i], userID, share)
		result.Shared = append(result.Shared, toBoardSummary(&shared[i], level))
	}

	return result, nil
}

// DeleteBoard removes the board with its cards, columns, and shares
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	err := s.uow.Do(ctx, func(tx *repository.Repositories) error {
		if _, _, err := s.access.Require(ctx, tx, boardID, userID, domain.AccessOwn); err != nil {
			return err
		}
		if err := tx.Cards.DeleteByBoard(ctx, boardID); err != nil {
			return response.NewInternalError("Failed to delete cards", err)
		}
		if err := tx.Columns.DeleteByBoard(ctx, boardID); err != nil {
			return response.NewInternalError("Failed to delete columns", err)
		}
		if err := tx.Shares.DeleteByBoard(ctx, boardID); err != nil {
			return response.NewInternalError("Failed to delete shares", err)
		}
		if err := tx.Boards.Delete(ctx, boardID); err != nil {
			return response.NewInternalError("Failed to delete board", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Board deleted",
		zap.String("board_id", boardID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}
