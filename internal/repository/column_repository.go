package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// ColumnRepository defines the interface for column data access
type ColumnRepository interface {
	Create(ctx context.Context, column *domain.Column) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	FindByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Column, error)
	CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error)
	// ShiftAfter moves every column of the board positioned after position by delta
	ShiftAfter(ctx context.Context, boardID uuid.UUID, position, delta int) error
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBoard(ctx context.Context, boardID uuid.UUID) error
}

type columnRepositoryImpl struct {
	db *gorm.DB
}

// NewColumnRepository creates a new instance of ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &columnRepositoryImpl{db: db}
}

func (r *columnRepositoryImpl) Create(ctx context.Context, column *domain.Column) error {
	return r.db.WithContext(ctx).Create(column).Error
}

func (r *columnRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	var column domain.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *columnRepositoryImpl) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Column, error) {
	var columns []domain.Column
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position ASC, created_at ASC").
		Find(&columns).Error
	return columns, err
}

func (r *columnRepositoryImpl) CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Column{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}

func (r *columnRepositoryImpl) ShiftAfter(ctx context.Context, boardID uuid.UUID, position, delta int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Column{}).
		Where("board_id = ? AND position > ?", boardID, position).
		UpdateColumn("position", gorm.Expr("position + ?", delta)).Error
}

func (r *columnRepositoryImpl) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.Column{}).Order("created_at ASC").Pluck("id", &ids).Error
	return ids, err
}

func (r *columnRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Column{}).Error
}

func (r *columnRepositoryImpl) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&domain.Column{}).Error
}
