package contract

import (
	"context"

	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MCQRepository interface {
	Create(ctx context.Context, mcq *entity.MCQ) error
	Update(ctx context.Context, mcq *entity.MCQ) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MCQ, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MCQ, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Triplet links (provenance). ReplaceTriplets rewrites the join rows.
	LinkTriplets(ctx context.Context, mcqId uuid.UUID, tripletIds []uuid.UUID) error
	ReplaceTriplets(ctx context.Context, mcqId uuid.UUID, tripletIds []uuid.UUID) error
	FindTripletIds(ctx context.Context, mcqId uuid.UUID) ([]uuid.UUID, error)
}
