package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// CardRepository defines the interface for card data access
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	// FindByColumn returns the column's cards ordered by (position, created_at, id)
	FindByColumn(ctx context.Context, columnID uuid.UUID) ([]domain.Card, error)
	CountByColumn(ctx context.Context, columnID uuid.UUID) (int64, error)
	ApplyShift(ctx context.Context, shift domain.PositionShift) error
	UpdatePlacement(ctx context.Context, id, columnID uuid.UUID, position int) error
	UpdateContent(ctx context.Context, id uuid.UUID, title, description string) error
	// Compact renumbers the column's cards to 0..N-1 and returns how many rows changed
	Compact(ctx context.Context, columnID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByColumn(ctx context.Context, columnID uuid.UUID) error
	DeleteByBoard(ctx context.Context, boardID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type cardRepositoryImpl struct {
	db *gorm.DB
}

// NewCardRepository creates a new instance of CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepositoryImpl{db: db}
}

func (r *cardRepositoryImpl) Create(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *cardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepositoryImpl) FindByColumn(ctx context.Context, columnID uuid.UUID) ([]domain.Card, error) {
	var cards []domain.Card
	err := r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order("position ASC, created_at ASC, id ASC").
		Find(&cards).Error
	return cards, err
}

func (r *cardRepositoryImpl) CountByColumn(ctx context.Context, columnID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Card{}).Where("column_id = ?", columnID).Count(&count).Error
	return count, err
}

func (r *cardRepositoryImpl) ApplyShift(ctx context.Context, shift domain.PositionShift) error {
	query := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Where("column_id = ? AND position >= ?", shift.ColumnID, shift.From)
	if shift.To != domain.OpenEnded {
		query = query.Where("position <= ?", shift.To)
	}
	return query.UpdateColumn("position", gorm.Expr("position + ?", shift.Delta)).Error
}

func (r *cardRepositoryImpl) UpdatePlacement(ctx context.Context, id, columnID uuid.UUID, position int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"column_id": columnID,
			"position":  position,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cardRepositoryImpl) UpdateContent(ctx context.Context, id uuid.UUID, title, description string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cardRepositoryImpl) Compact(ctx context.Context, columnID uuid.UUID) (int, error) {
	cards, err := r.FindByColumn(ctx, columnID)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i, card := range cards {
		if card.Position == i {
			continue
		}
		err := r.db.WithContext(ctx).
			Model(&domain.Card{}).
			Where("id = ?", card.ID).
			UpdateColumn("position", i).Error
		if err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func (r *cardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Card{}).Error
}

func (r *cardRepositoryImpl) DeleteByColumn(ctx context.Context, columnID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("column_id = ?", columnID).Delete(&domain.Card{}).Error
}

func (r *cardRepositoryImpl) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	columnIDs := r.db.Model(&domain.Column{}).Select("id").Where("board_id = ?", boardID)
	return r.db.WithContext(ctx).Where("column_id IN (?)", columnIDs).Delete(&domain.Card{}).Error
}

func (r *cardRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Card{}).Count(&count).Error
	return count, err
}
