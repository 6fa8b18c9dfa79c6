package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// AccessService decides what a user may do on a board.
// Require accepts the repositories to read through so it can run inside a unit of work.
type AccessService interface {
	Evaluate(board *domain.Board, userID uuid.UUID, share *domain.Share) domain.AccessLevel
	Require(ctx context.Context, repos *repository.Repositories, boardID, userID uuid.UUID, minimum domain.AccessLevel) (*domain.Board, domain.AccessLevel, error)
}

type accessServiceImpl struct{}

// NewAccessService creates a new instance of AccessService
func NewAccessService() AccessService {
	return &accessServiceImpl{}
}

// Evaluate ranks the user's capability. share is the user's share row on the board, or nil.
func (s *accessServiceImpl) Evaluate(board *domain.Board, userID uuid.UUID, share *domain.Share) domain.AccessLevel {
	switch {
	case board == nil:
		return domain.AccessNone
	case board.IsOwnedBy(userID):
		return domain.AccessOwn
	case share == nil || share.BoardID != board.ID || share.UserID != userID:
		return domain.AccessNone
	case share.CanEdit:
		return domain.AccessEdit
	default:
		return domain.AccessView
	}
}

func (s *accessServiceImpl) Require(ctx context.Context, repos *repository.Repositories, boardID, userID uuid.UUID, minimum domain.AccessLevel) (*domain.Board, domain.AccessLevel, error) {
	board, err := repos.Boards.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.AccessNone, response.NewNotFoundError("Board not found", "")
		}
		return nil, domain.AccessNone, response.NewInternalError("Failed to fetch board", err)
	}

	var share *domain.Share
	if !board.IsOwnedBy(userID) {
		share, err = repos.Shares.Find(ctx, boardID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.AccessNone, response.NewInternalError("Failed to fetch board share", err)
		}
	}

	level := s.Evaluate(board, userID, share)
	if !level.Allows(minimum) {
		return nil, level, forbiddenFor(minimum)
	}
	return board, level, nil
}

func forbiddenFor(minimum domain.AccessLevel) error {
	switch minimum {
	case domain.AccessOwn:
		return response.NewForbiddenError("Only the board owner can perform this action", "")
	case domain.AccessEdit:
		return response.NewForbiddenError("You do not have permission to edit this board", "")
	default:
		return response.NewForbiddenError("You do not have access to this board", "")
	}
}
