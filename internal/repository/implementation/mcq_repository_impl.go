package implementation

import (
	"context"
	"errors"
	"time"

	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/mapper"
	"mcq-writer-be/internal/model"
	"mcq-writer-be/internal/repository/contract"
	"mcq-writer-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MCQRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MCQMapper
}

func NewMCQRepository(db *gorm.DB) contract.MCQRepository {
	return &MCQRepositoryImpl{
		db:     db,
		mapper: mapper.NewMCQMapper(),
	}
}

func (r *MCQRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MCQRepositoryImpl) Create(ctx context.Context, mcq *entity.MCQ) error {
	m := r.mapper.ToModel(mcq)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tripletIds := mcq.TripletIds
	*mcq = *r.mapper.ToEntity(m)
	mcq.TripletIds = tripletIds
	return nil
}

func (r *MCQRepositoryImpl) Update(ctx context.Context, mcq *entity.MCQ) error {
	m := r.mapper.ToModel(mcq)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	tripletIds := mcq.TripletIds
	*mcq = *r.mapper.ToEntity(m)
	mcq.TripletIds = tripletIds
	return nil
}

func (r *MCQRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MCQ{}, id).Error
}

func (r *MCQRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MCQ, error) {
	var m model.MCQ
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	mcq := r.mapper.ToEntity(&m)

	tripletIds, err := r.FindTripletIds(ctx, mcq.Id)
	if err != nil {
		return nil, err
	}
	mcq.TripletIds = tripletIds
	return mcq, nil
}

func (r *MCQRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MCQ, error) {
	var models []*model.MCQ
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MCQRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MCQ{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MCQRepositoryImpl) LinkTriplets(ctx context.Context, mcqId uuid.UUID, tripletIds []uuid.UUID) error {
	if len(tripletIds) == 0 {
		return nil
	}
	links := make([]*model.MCQTriplet, len(tripletIds))
	for i, tid := range tripletIds {
		links[i] = &model.MCQTriplet{
			Id:        uuid.New(),
			MCQId:     mcqId,
			TripletId: tid,
			CreatedAt: time.Now(),
		}
	}
	return r.db.WithContext(ctx).Create(links).Error
}

func (r *MCQRepositoryImpl) ReplaceTriplets(ctx context.Context, mcqId uuid.UUID, tripletIds []uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("mcq_id = ?", mcqId).
		Delete(&model.MCQTriplet{}).Error; err != nil {
		return err
	}
	return r.LinkTriplets(ctx, mcqId, tripletIds)
}

func (r *MCQRepositoryImpl) FindTripletIds(ctx context.Context, mcqId uuid.UUID) ([]uuid.UUID, error) {
	var links []*model.MCQTriplet
	if err := r.db.WithContext(ctx).
		Where("mcq_id = ?", mcqId).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(links))
	for i, l := range links {
		ids[i] = l.TripletId
	}
	return ids, nil
}
