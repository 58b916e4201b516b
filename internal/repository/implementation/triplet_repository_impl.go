package implementation

import (
	"context"
	"errors"

	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/mapper"
	"mcq-writer-be/internal/model"
	"mcq-writer-be/internal/repository/contract"
	"mcq-writer-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TripletRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TripletMapper
}

func NewTripletRepository(db *gorm.DB) contract.TripletRepository {
	return &TripletRepositoryImpl{
		db:     db,
		mapper: mapper.NewTripletMapper(),
	}
}

func (r *TripletRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TripletRepositoryImpl) Create(ctx context.Context, triplet *entity.Triplet) error {
	m := r.mapper.ToModel(triplet)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*triplet = *r.mapper.ToEntity(m)
	return nil
}

func (r *TripletRepositoryImpl) Update(ctx context.Context, triplet *entity.Triplet) error {
	m := r.mapper.ToModel(triplet)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*triplet = *r.mapper.ToEntity(m)
	return nil
}

func (r *TripletRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Triplet{}, id).Error
}

func (r *TripletRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Triplet, error) {
	var m model.Triplet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TripletRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Triplet, error) {
	var models []*model.Triplet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TripletRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Triplet{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --- Embeddings (Postgres/pgvector only) ---

type TripletEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TripletMapper
}

func NewTripletEmbeddingRepository(db *gorm.DB) contract.TripletEmbeddingRepository {
	return &TripletEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewTripletMapper(),
	}
}

func (r *TripletEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.TripletEmbedding) error {
	if err := r.db.WithContext(ctx).
		Where("triplet_id = ?", embedding.TripletId).
		Delete(&model.TripletEmbedding{}).Error; err != nil {
		return err
	}
	m := r.mapper.EmbeddingToModel(embedding)
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *TripletEmbeddingRepositoryImpl) DeleteByTripletId(ctx context.Context, tripletId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("triplet_id = ?", tripletId).
		Delete(&model.TripletEmbedding{}).Error
}

// nearestOrder builds the cosine-distance ordering clause. gorm's Order
// only accepts strings and clause.OrderBy values; an expression must go
// through Clauses or it is dropped from the generated SQL.
func nearestOrder(query []float32) clause.OrderBy {
	return clause.OrderBy{
		Expression: clause.Expr{
			SQL:  "embedding_value <=> ?",
			Vars: []interface{}{pgvector.NewVector(query)},
		},
	}
}

func (r *TripletEmbeddingRepositoryImpl) FindNearest(ctx context.Context, query []float32, limit int) ([]uuid.UUID, error) {
	var models []*model.TripletEmbedding
	err := r.db.WithContext(ctx).
		Clauses(nearestOrder(query)).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(models))
	for i, m := range models {
		ids[i] = m.TripletId
	}
	return ids, nil
}
