package mapper

import (
	"encoding/json"
	"time"

	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type TripletMapper struct{}

func NewTripletMapper() *TripletMapper {
	return &TripletMapper{}
}

func (m *TripletMapper) ToEntity(t *model.Triplet) *entity.Triplet {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		ts := t.DeletedAt.Time
		deletedAt = &ts
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		updatedAt = &ts
	}

	// Context sentences live as a JSON array in a text column; a corrupt value
	// degrades to no provenance rather than failing the read.
	var sentences []string
	if t.ContextSentences != "" {
		_ = json.Unmarshal([]byte(t.ContextSentences), &sentences)
	}

	return &entity.Triplet{
		Id:               t.Id,
		Subject:          t.Subject,
		Action:           t.Action,
		Object:           t.Object,
		Relation:         t.Relation,
		SourceId:         t.SourceId,
		ContextSentences: sentences,
		SchemaValid:      t.SchemaValid,
		Status:           t.Status,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
		IsDeleted:        t.DeletedAt.Valid,
	}
}

func (m *TripletMapper) ToModel(t *entity.Triplet) *model.Triplet {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	sentencesJson := "[]"
	if len(t.ContextSentences) > 0 {
		if b, err := json.Marshal(t.ContextSentences); err == nil {
			sentencesJson = string(b)
		}
	}

	return &model.Triplet{
		Id:               t.Id,
		Subject:          t.Subject,
		Action:           t.Action,
		Object:           t.Object,
		Relation:         t.Relation,
		SourceId:         t.SourceId,
		ContextSentences: sentencesJson,
		SchemaValid:      t.SchemaValid,
		Status:           t.Status,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func (m *TripletMapper) ToEntities(triplets []*model.Triplet) []*entity.Triplet {
	entities := make([]*entity.Triplet, len(triplets))
	for i, t := range triplets {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *TripletMapper) EmbeddingToEntity(e *model.TripletEmbedding) *entity.TripletEmbedding {
	if e == nil {
		return nil
	}
	return &entity.TripletEmbedding{
		Id:             e.Id,
		TripletId:      e.TripletId,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *TripletMapper) EmbeddingToModel(e *entity.TripletEmbedding) *model.TripletEmbedding {
	if e == nil {
		return nil
	}
	return &model.TripletEmbedding{
		Id:             e.Id,
		TripletId:      e.TripletId,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
	}
}
