package contract

import (
	"context"

	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SourceRepository interface {
	Create(ctx context.Context, source *entity.Source) error
	Update(ctx context.Context, source *entity.Source) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Source, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Source, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
