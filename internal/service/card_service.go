package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// CardService defines the interface for card business logic
type CardService interface {
	CreateCard(ctx context.Context, userID, columnID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	UpdateCard(ctx context.Context, userID, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	MoveCard(ctx context.Context, userID, cardID uuid.UUID, req *dto.MoveCardRequest) (*dto.CardResponse, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

type cardServiceImpl struct {
	uow     repository.UnitOfWork
	access  AccessService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCardService creates a new instance of CardService
func NewCardService(uow repository.UnitOfWork, access AccessService, m *metrics.Metrics, logger *zap.Logger) CardService {
	return &cardServiceImpl{
		uow:     uow,
		access:  access,
		metrics: m,
		logger:  logger,
	}
}

// CreateCard appends a card at the end of the column
func (s *cardServiceImpl) CreateCard(ctx context.Context, userID, columnID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	title, err := normalizeTitle("Card title", req.Title)
	if err != nil {
		return nil, err
	}

	card := &domain.Card{Title: title, Description: req.Description, ColumnID: columnID}
	err = s.uow.Do(ctx, func(tx *repository.Repositories) error {
		if _, err := s.requireColumnAccess(ctx, tx, columnID, userID); err != nil {
			return err
		}
		count, err := tx.Cards.CountByColumn(ctx, columnID)
		if err != nil {
			return response.NewInternalError("Failed to count cards", err)
		}
		card.Position = AppendPosition(count)
		if err := tx.Cards.Create(ctx, card); err != nil {
			return response.NewInternalError("Failed to create card", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Card created",
		zap.String("card_id", card.ID.String()),
		zap.String("column_id", columnID.String()),
		zap.Int("position", card.Position),
	)

	resp := toCardResponse(card)
	return &resp, nil
}

// UpdateCard replaces the card's title and description
func (s *cardServiceImpl) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	title, err := normalizeTitle("Card title", req.Title)
	if err != nil {
		return nil, err
	}

	var updated *domain.Card
	err = s.uow.Do(ctx, func(tx *repository.Repositories) error {
		card, err := tx.Cards.FindByID(ctx, cardID)
		if err != nil {
			return notFoundOr(err, "Card not found", "Failed to fetch card")
		}
		if _, err := s.requireColumnAccess(ctx, tx, card.ColumnID, userID); err != nil {
			return err
		}
		if err := tx.Cards.UpdateContent(ctx, cardID, title, req.Description); err != nil {
			return notFoundOr(err, "Card not found", "Failed to update card")
		}
		updated, err = tx.Cards.FindByID(ctx, cardID)
		if err != nil {
			return notFoundOr(err, "Card not found", "Failed to fetch card")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toCardResponse(updated)
	return &resp, nil
}

// MoveCard places the card at the requested position of a column on the same board,
// renumbering siblings so both columns stay dense.
func (s *cardServiceImpl) MoveCard(ctx context.Context, userID, cardID uuid.UUID, req *dto.MoveCardRequest) (*dto.CardResponse, error) {
	if req.ColumnID == nil || *req.ColumnID == uuid.Nil {
		return nil, response.NewValidationError("Target column is required", "")
	}
	if req.Position == nil {
		return nil, response.NewValidationError("Target position is required", "")
	}
	if *req.Position < 0 {
		return nil, response.NewValidationError("Target position must not be negative", "")
	}

	var (
		moved  *domain.Card
		source Placement
		plan   MovePlan
	)
	err := s.uow.Do(ctx, func(tx *repository.Repositories) error {
		card, err := tx.Cards.FindByID(ctx, cardID)
		if err != nil {
			return notFoundOr(err, "Card not found", "Failed to fetch card")
		}
		sourceColumn, err := s.requireColumnAccess(ctx, tx, card.ColumnID, userID)
		if err != nil {
			return err
		}

		targetColumn := sourceColumn
		if *req.ColumnID != sourceColumn.ID {
			targetColumn, err = tx.Columns.FindByID(ctx, *req.ColumnID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return response.NewValidationError("Target column not found", "")
				}
				return response.NewInternalError("Failed to fetch target column", err)
			}
			if targetColumn.BoardID != sourceColumn.BoardID {
				return response.NewValidationError("Target column belongs to another board", "")
			}
		}

		sourceCount, err := tx.Cards.CountByColumn(ctx, sourceColumn.ID)
		if err != nil {
			return response.NewInternalError("Failed to count cards", err)
		}
		targetCount := sourceCount
		if targetColumn.ID != sourceColumn.ID {
			targetCount, err = tx.Cards.CountByColumn(ctx, targetColumn.ID)
			if err != nil {
				return response.NewInternalError("Failed to count cards", err)
			}
		}

		source = Placement{ColumnID: sourceColumn.ID, Position: card.Position}
		plan = PlanMove(source, int(sourceCount), Placement{ColumnID: targetColumn.ID, Position: *req.Position}, int(targetCount))
		if plan.NoOp {
			moved = card
			return nil
		}

		for _, shift := range plan.Shifts {
			if err := tx.Cards.ApplyShift(ctx, shift); err != nil {
				return response.NewInternalError("Failed to renumber cards", err)
			}
		}
		if err := tx.Cards.UpdatePlacement(ctx, cardID, plan.Target.ColumnID, plan.Target.Position); err != nil {
			return notFoundOr(err, "Card not found", "Failed to move card")
		}

		moved, err = tx.Cards.FindByID(ctx, cardID)
		if err != nil {
			return notFoundOr(err, "Card not found", "Failed to fetch card")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !plan.NoOp {
		scope := metrics.MoveScopeWithinColumn
		if plan.CrossColumn(source) {
			scope = metrics.MoveScopeAcrossColumn
		}
		if s.metrics != nil {
			s.metrics.IncrementCardMoved(scope)
		}
		s.logger.Info("Card moved",
			zap.String("card_id", cardID.String()),
			zap.String("from_column_id", source.ColumnID.String()),
			zap.Int("from_position", source.Position),
			zap.String("to_column_id", plan.Target.ColumnID.String()),
			zap.Int("to_position", plan.Target.Position),
		)
	}

	resp := toCardResponse(moved)
	return &resp, nil
}

// DeleteCard removes the card and renumbers the cards after it
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	err := s.uow.Do(ctx, func(tx *repository.Repositories) error {
		card, err := tx.Cards.FindByID(ctx, cardID)
		if err != nil {
			return notFoundOr(err, "Card not found", "Failed to fetch card")
		}
		if _, err := s.requireColumnAccess(ctx, tx, card.ColumnID, userID); err != nil {
			return err
		}
		if err := tx.Cards.Delete(ctx, cardID); err != nil {
			return response.NewInternalError("Failed to delete card", err)
		}
		shift := PlanRemoval(Placement{ColumnID: card.ColumnID, Position: card.Position})
		if err := tx.Cards.ApplyShift(ctx, shift); err != nil {
			return response.NewInternalError("Failed to renumber cards", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Card deleted", zap.String("card_id", cardID.String()))
	return nil
}

// requireColumnAccess loads the column and checks edit access on its board
func (s *cardServiceImpl) requireColumnAccess(ctx context.Context, tx *repository.Repositories, columnID, userID uuid.UUID) (*domain.Column, error) {
	column, err := tx.Columns.FindByID(ctx, columnID)
	if err != nil {
		return nil, notFoundOr(err, "Column not found", "Failed to fetch column")
	}
	if _, _, err := s.access.Require(ctx, tx, column.BoardID, userID, domain.AccessEdit); err != nil {
		return nil, err
	}
	return column, nil
}
