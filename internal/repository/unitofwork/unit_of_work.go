package unitofwork

import (
	"context"

	"mcq-writer-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SourceRepository() contract.SourceRepository
	TripletRepository() contract.TripletRepository
	TripletEmbeddingRepository() contract.TripletEmbeddingRepository

	MCQRepository() contract.MCQRepository

	ReviewSessionRepository() contract.ReviewSessionRepository
	SessionEventRepository() contract.SessionEventRepository
}
