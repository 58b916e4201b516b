package contract

import (
	"context"

	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ReviewSessionRepository interface {
	Create(ctx context.Context, session *entity.ReviewSession) error
	Update(ctx context.Context, session *entity.ReviewSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReviewSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReviewSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type SessionEventRepository interface {
	Create(ctx context.Context, event *entity.SessionEvent) error
	Update(ctx context.Context, event *entity.SessionEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// MarkCompacted flags a batch of events as folded into a summary.
	MarkCompacted(ctx context.Context, ids []uuid.UUID) error
}
