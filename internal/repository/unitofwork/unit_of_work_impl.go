package unitofwork

import (
	"context"
	"fmt"

	"mcq-writer-be/internal/repository/contract"
	"mcq-writer-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) SourceRepository() contract.SourceRepository {
	return implementation.NewSourceRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TripletRepository() contract.TripletRepository {
	return implementation.NewTripletRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TripletEmbeddingRepository() contract.TripletEmbeddingRepository {
	return implementation.NewTripletEmbeddingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MCQRepository() contract.MCQRepository {
	return implementation.NewMCQRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ReviewSessionRepository() contract.ReviewSessionRepository {
	return implementation.NewReviewSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SessionEventRepository() contract.SessionEventRepository {
	return implementation.NewSessionEventRepository(u.getDB())
}
