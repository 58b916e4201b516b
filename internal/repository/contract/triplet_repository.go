package contract

import (
	"context"

	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TripletRepository interface {
	Create(ctx context.Context, triplet *entity.Triplet) error
	Update(ctx context.Context, triplet *entity.Triplet) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Triplet, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Triplet, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type TripletEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *entity.TripletEmbedding) error
	DeleteByTripletId(ctx context.Context, tripletId uuid.UUID) error
	// FindNearest returns triplet ids ordered by cosine distance to the query
	// vector. Postgres + pgvector only.
	FindNearest(ctx context.Context, query []float32, limit int) ([]uuid.UUID, error)
}
