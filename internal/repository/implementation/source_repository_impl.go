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
	"gorm.io/gorm"
)

type SourceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SourceMapper
}

func NewSourceRepository(db *gorm.DB) contract.SourceRepository {
	return &SourceRepositoryImpl{
		db:     db,
		mapper: mapper.NewSourceMapper(),
	}
}

func (r *SourceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SourceRepositoryImpl) Create(ctx context.Context, source *entity.Source) error {
	m := r.mapper.ToModel(source)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*source = *r.mapper.ToEntity(m)
	return nil
}

func (r *SourceRepositoryImpl) Update(ctx context.Context, source *entity.Source) error {
	m := r.mapper.ToModel(source)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*source = *r.mapper.ToEntity(m)
	return nil
}

func (r *SourceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Source{}, id).Error
}

func (r *SourceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Source, error) {
	var m model.Source
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SourceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Source, error) {
	var models []*model.Source
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SourceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Source{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
