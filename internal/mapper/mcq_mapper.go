package mapper

import (
	"encoding/json"
	"time"

	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/model"

	"gorm.io/gorm"
)

type MCQMapper struct{}

func NewMCQMapper() *MCQMapper {
	return &MCQMapper{}
}

func (m *MCQMapper) ToEntity(q *model.MCQ) *entity.MCQ {
	if q == nil {
		return nil
	}

	var deletedAt *time.Time
	if q.DeletedAt.Valid {
		t := q.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !q.UpdatedAt.IsZero() {
		t := q.UpdatedAt
		updatedAt = &t
	}

	var options []string
	if q.Options != "" {
		_ = json.Unmarshal([]byte(q.Options), &options)
	}

	return &entity.MCQ{
		Id:            q.Id,
		Stem:          q.Stem,
		Question:      q.Question,
		Options:       options,
		CorrectOption: q.CorrectOption,
		SourceId:      q.SourceId,
		VisualPrompt:  q.VisualPrompt,
		ImagePath:     q.ImagePath,
		Status:        q.Status,
		Model:         q.Model,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
		IsDeleted:     q.DeletedAt.Valid,
	}
}

func (m *MCQMapper) ToModel(q *entity.MCQ) *model.MCQ {
	if q == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if q.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *q.DeletedAt, Valid: true}
	} else if q.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if q.UpdatedAt != nil {
		updatedAt = *q.UpdatedAt
	}

	optionsJson := "[]"
	if b, err := json.Marshal(q.Options); err == nil {
		optionsJson = string(b)
	}

	return &model.MCQ{
		Id:            q.Id,
		Stem:          q.Stem,
		Question:      q.Question,
		Options:       optionsJson,
		CorrectOption: q.CorrectOption,
		SourceId:      q.SourceId,
		VisualPrompt:  q.VisualPrompt,
		ImagePath:     q.ImagePath,
		Status:        q.Status,
		Model:         q.Model,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
	}
}

func (m *MCQMapper) ToEntities(mcqs []*model.MCQ) []*entity.MCQ {
	entities := make([]*entity.MCQ, len(mcqs))
	for i, q := range mcqs {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
