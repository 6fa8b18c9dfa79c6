package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// ShareRepository defines the interface for the board sharing ledger
type ShareRepository interface {
	Create(ctx context.Context, share *domain.Share) error
	Find(ctx context.Context, boardID, userID uuid.UUID) (*domain.Share, error)
	// FindByBoard returns the board's shares with their users, oldest first
	FindByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Share, error)
	UpdateCanEdit(ctx context.Context, boardID, userID uuid.UUID, canEdit bool) error
	Delete(ctx context.Context, boardID, userID uuid.UUID) error
	DeleteByBoard(ctx context.Context, boardID uuid.UUID) error
}

type shareRepositoryImpl struct {
	db *gorm.DB
}

// NewShareRepository creates a new instance of ShareRepository
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepositoryImpl{db: db}
}

func (r *shareRepositoryImpl) Create(ctx context.Context, share *domain.Share) error {
	return r.db.WithContext(ctx).Create(share).Error
}

func (r *shareRepositoryImpl) Find(ctx context.Context, boardID, userID uuid.UUID) (*domain.Share, error) {
	var share domain.Share
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (r *shareRepositoryImpl) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Share, error) {
	var shares []domain.Share
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&shares).Error
	return shares, err
}

func (r *shareRepositoryImpl) UpdateCanEdit(ctx context.Context, boardID, userID uuid.UUID, canEdit bool) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Share{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Update("can_edit", canEdit)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *shareRepositoryImpl) Delete(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&domain.Share{}).Error
}

func (r *shareRepositoryImpl) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&domain.Share{}).Error
}
