package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups the repositories bound to one database handle
type Repositories struct {
	Users   UserRepository
	Boards  BoardRepository
	Columns ColumnRepository
	Cards   CardRepository
	Shares  ShareRepository
}

// NewRepositories binds every repository to db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(db),
		Boards:  NewBoardRepository(db),
		Columns: NewColumnRepository(db),
		Cards:   NewCardRepository(db),
		Shares:  NewShareRepository(db),
	}
}

// UnitOfWork runs a callback against repositories scoped to a single transaction.
// Only the repositories passed to fn may be used inside it.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx *Repositories) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a UnitOfWork backed by gorm transactions
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

// Do commits when fn returns nil and rolls back otherwise, including on panic
func (u *gormUnitOfWork) Do(ctx context.Context, fn func(tx *Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
