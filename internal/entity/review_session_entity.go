package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReviewSession struct {
	Id        uuid.UUID
	SessionId string
	UserId    string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type SessionEvent struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Turn      int
	Role      string
	Content   string
	Compacted bool
	CreatedAt time.Time
}

const (
	EventRoleUser    = "user"
	EventRoleModel   = "model"
	EventRoleSummary = "summary"
)
