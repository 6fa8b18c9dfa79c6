package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// ShareService manages the board sharing ledger. Every operation is owner-only.
type ShareService interface {
	ShareBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.ShareBoardRequest) (*dto.ShareBoardResponse, error)
	UpdatePermission(ctx context.Context, userID, boardID, targetUserID uuid.UUID, req *dto.UpdateShareRequest) (*dto.ShareResponse, error)
	Revoke(ctx context.Context, userID, boardID, targetUserID uuid.UUID) error
	ListShares(ctx context.Context, userID, boardID uuid.UUID) ([]dto.ShareResponse, error)
}

type shareServiceImpl struct {
	repos    *repository.Repositories
	uow      repository.UnitOfWork
	access   AccessService
	notifier client.NotificationClient
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewShareService creates a new instance of ShareService
func NewShareService(
	repos *repository.Repositories,
	uow repository.UnitOfWork,
	access AccessService,
	notifier client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) ShareService {
	if notifier == nil {
		notifier = client.NewNoOpNotificationClient()
	}
	return &shareServiceImpl{
		repos:    repos,
		uow:      uow,
		access:   access,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// ShareBoard grants the user registered under req.Email access at req.Level.
// An existing share is reported as already shared and left unchanged.
func (s *shareServiceImpl) ShareBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.ShareBoardRequest) (*dto.ShareBoardResponse, error) {
	level := domain.ShareLevel(req.Level)

	var (
		result *dto.ShareBoardResponse
		board  *domain.Board
	)
	err := s.uow.Do(ctx, func(tx *repository.Repositories) error {
		target, err := tx.Users.FindByEmail(ctx, normalizeEmail(req.Email))
		if err != nil {
			return notFoundOr(err, "No user registered with that email", "Failed to fetch user")
		}

		board, _, err = s.access.Require(ctx, tx, boardID, userID, domain.AccessOwn)
		if err != nil {
			return err
		}
		if board.IsOwnedBy(target.ID) {
			return response.NewValidationError("You cannot share a board with yourself", "")
		}
		if !level.IsValid() {
			return response.NewValidationError("Share level must be view or edit", "")
		}

		existing, err := tx.Shares.Find(ctx, boardID, target.ID)
		switch {
		case err == nil:
			result = &dto.ShareBoardResponse{Share: toShareResponse(existing, target), AlreadyShared: true}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return response.NewInternalError("Failed to fetch board share", err)
		}

		share := &domain.Share{UserID: target.ID, BoardID: boardID, CanEdit: level.CanEdit()}
		if err := tx.Shares.Create(ctx, share); err != nil {
			return response.NewInternalError("Failed to share board", err)
		}
		result = &dto.ShareBoardResponse{Share: toShareResponse(share, target)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadyShared {
		s.logger.Info("Board already shared with user",
			zap.String("board_id", boardID.String()),
			zap.String("target_user_id", result.Share.UserID.String()),
		)
		return result, nil
	}

	if s.metrics != nil {
		s.metrics.IncrementShareGranted(string(level))
	}
	s.logger.Info("Board shared",
		zap.String("board_id", boardID.String()),
		zap.String("target_user_id", result.Share.UserID.String()),
		zap.String("level", string(level)),
	)

	s.notifyShared(ctx, userID, board, result.Share)
	return result, nil
}

func (s *shareServiceImpl) notifyShared(ctx context.Context, actorID uuid.UUID, board *domain.Board, share dto.ShareResponse) {
	event := client.NotificationEvent{
		Type:         client.NotificationBoardShared,
		ActorID:      actorID,
		TargetUserID: share.UserID,
		ResourceType: "board",
		ResourceID:   board.ID,
		ResourceName: board.Title,
		Metadata:     map[string]interface{}{"level": share.Level},
	}
	if err := s.notifier.SendNotification(ctx, event); err != nil {
		s.logger.Warn("Failed to send board shared notification",
			zap.String("board_id", board.ID.String()),
			zap.String("target_user_id", share.UserID.String()),
			zap.Error(err),
		)
	}
}

// UpdatePermission changes the level of an existing share
func (s *shareServiceImpl) UpdatePermission(ctx context.Context, userID, boardID, targetUserID uuid.UUID, req *dto.UpdateShareRequest) (*dto.ShareResponse, error) {
	level := domain.ShareLevel(req.Level)

	var result dto.ShareResponse
	err := s.uow.Do(ctx, func(tx *repository.Repositories) error {
		if _, _, err := s.access.Require(ctx, tx, boardID, userID, domain.AccessOwn); err != nil {
			return err
		}
		if !level.IsValid() {
			return response.NewValidationError("Share level must be view or edit", "")
		}
		if err := tx.Shares.UpdateCanEdit(ctx, boardID, targetUserID, level.CanEdit()); err != nil {
			return notFoundOr(err, "Share not found", "Failed to update share")
		}
		share, err := tx.Shares.Find(ctx, boardID, targetUserID)
		if err != nil {
			return notFoundOr(err, "Share not found", "Failed to fetch share")
		}
		user, err := tx.Users.FindByID(ctx, targetUserID)
		if err != nil {
			return notFoundOr(err, "User not found", "Failed to fetch user")
		}
		result = toShareResponse(share, user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Share permission updated",
		zap.String("board_id", boardID.String()),
		zap.String("target_user_id", targetUserID.String()),
		zap.String("level", string(level)),
	)
	return &result, nil
}

// Revoke removes a share. Revoking a share that does not exist succeeds.
func (s *shareServiceImpl) Revoke(ctx context.Context, userID, boardID, targetUserID uuid.UUID) error {
	err := s.uow.Do(ctx, func(tx *repository.Repositories) error {
		if _, _, err := s.access.Require(ctx, tx, boardID, userID, domain.AccessOwn); err != nil {
			return err
		}
		if err := tx.Shares.Delete(ctx, boardID, targetUserID); err != nil {
			return response.NewInternalError("Failed to revoke share", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Share revoked",
		zap.String("board_id", boardID.String()),
		zap.String("target_user_id", targetUserID.String()),
	)
	return nil
}

// ListShares returns the users the board is shared with
func (s *shareServiceImpl) ListShares(ctx context.Context, userID, boardID uuid.UUID) ([]dto.ShareResponse, error) {
	if _, _, err := s.access.Require(ctx, s.repos, boardID, userID, domain.AccessOwn); err != nil {
		return nil, err
	}

	shares, err := s.repos.Shares.FindByBoard(ctx, boardID)
	if err != nil {
		return nil, response.NewInternalError("Failed to fetch shares", err)
	}

	result := make([]dto.ShareResponse, 0, len(shares))
	for i := range shares {
		result = append(result, toShareResponse(&shares[i], shares[i].User))
	}
	return result, nil
}
