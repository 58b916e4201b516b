package mapper

import (
	"time"

	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/model"

	"gorm.io/gorm"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) SessionToEntity(s *model.ReviewSession) *entity.ReviewSession {
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

	return &entity.ReviewSession{
		Id:        s.Id,
		SessionId: s.SessionId,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: s.DeletedAt.Valid,
	}
}

func (m *SessionMapper) SessionToModel(s *entity.ReviewSession) *model.ReviewSession {
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

	return &model.ReviewSession{
		Id:        s.Id,
		SessionId: s.SessionId,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *SessionMapper) EventToEntity(e *model.SessionEvent) *entity.SessionEvent {
	if e == nil {
		return nil
	}
	return &entity.SessionEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		Turn:      e.Turn,
		Role:      e.Role,
		Content:   e.Content,
		Compacted: e.Compacted,
		CreatedAt: e.CreatedAt,
	}
}

func (m *SessionMapper) EventToModel(e *entity.SessionEvent) *model.SessionEvent {
	if e == nil {
		return nil
	}
	return &model.SessionEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		Turn:      e.Turn,
		Role:      e.Role,
		Content:   e.Content,
		Compacted: e.Compacted,
		CreatedAt: e.CreatedAt,
	}
}

func (m *SessionMapper) EventsToEntities(events []*model.SessionEvent) []*entity.SessionEvent {
	entities := make([]*entity.SessionEvent, len(events))
	for i, e := range events {
		entities[i] = m.EventToEntity(e)
	}
	return entities
}
