package mapper

import (
	"time"

	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/model"

	"gorm.io/gorm"
)

type SourceMapper struct{}

func NewSourceMapper() *SourceMapper {
	return &SourceMapper{}
}

func (m *SourceMapper) ToEntity(s *model.Source) *entity.Source {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Source{
		Id:              s.Id,
		SourceId:        s.SourceId,
		SourceType:      s.SourceType,
		Title:           s.Title,
		Authors:         s.Authors,
		PublicationYear: s.PublicationYear,
		Content:         s.Content,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       s.DeletedAt.Valid,
	}
}

func (m *SourceMapper) ToModel(s *entity.Source) *model.Source {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Source{
		Id:              s.Id,
		SourceId:        s.SourceId,
		SourceType:      s.SourceType,
		Title:           s.Title,
		Authors:         s.Authors,
		PublicationYear: s.PublicationYear,
		Content:         s.Content,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *SourceMapper) ToEntities(sources []*model.Source) []*entity.Source {
	entities := make([]*entity.Source, len(sources))
	for i, s := range sources {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
