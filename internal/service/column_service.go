package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// ColumnService defines the interface for column business logic
type ColumnService interface {
	CreateColumn(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error)
	DeleteColumn(ctx context.Context, userID, columnID uuid.UUID) error
}

type columnServiceImpl struct {
	uow    repository.UnitOfWork
	access AccessService
	logger *zap.Logger
}

// NewColumnService creates a new instance of ColumnService
func NewColumnService(uow repository.UnitOfWork, access AccessService, logger *zap.Logger) ColumnService {
	return &columnServiceImpl{
		uow:    uow,
		access: access,
		logger: logger,
	}
}

// CreateColumn appends a column after the board's existing columns
func (s *columnServiceImpl) CreateColumn(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
	title, err := normalizeTitle("Column title", req.Title)
	if err != nil {
		return nil, err
	}

	column := &domain.Column{Title: title, BoardID: boardID}
	err = s.uow.Do(ctx, func(tx *repository.Repositories) error {
		if _, _, err := s.access.Require(ctx, tx, boardID, userID, domain.AccessEdit); err != nil {
			return err
		}
		count, err := tx.Columns.CountByBoard(ctx, boardID)
		if err != nil {
			return response.NewInternalError("Failed to count columns", err)
		}
		column.Position = AppendPosition(count)
		if err := tx.Columns.Create(ctx, column); err != nil {
			return response.NewInternalError("Failed to create column", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Column created",
		zap.String("column_id", column.ID.String()),
		zap.String("board_id", boardID.String()),
		zap.Int("position", column.Position),
	)

	resp := toColumnResponse(column)
	return &resp, nil
}

// DeleteColumn removes the column and its cards and closes the gap in column positions
func (s *columnServiceImpl) DeleteColumn(ctx context.Context, userID, columnID uuid.UUID) error {
	var boardID uuid.UUID
	err := s.uow.Do(ctx, func(tx *repository.Repositories) error {
		column, err := tx.Columns.FindByID(ctx, columnID)
		if err != nil {
			return notFoundOr(err, "Column not found", "Failed to fetch column")
		}
		boardID = column.BoardID

		if _, _, err := s.access.Require(ctx, tx, column.BoardID, userID, domain.AccessEdit); err != nil {
			return err
		}
		if err := tx.Cards.DeleteByColumn(ctx, columnID); err != nil {
			return response.NewInternalError("Failed to delete cards", err)
		}
		if err := tx.Columns.Delete(ctx, columnID); err != nil {
			return response.NewInternalError("Failed to delete column", err)
		}
		if err := tx.Columns.ShiftAfter(ctx, column.BoardID, column.Position, -1); err != nil {
			return response.NewInternalError("Failed to renumber columns", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Column deleted",
		zap.String("column_id", columnID.String()),
		zap.String("board_id", boardID.String()),
	)
	return nil
}
