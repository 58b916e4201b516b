package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewSession struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SessionId string         `gorm:"type:varchar(64);not null;uniqueIndex"` // "session_<unix>"
	UserId    string         `gorm:"type:varchar(128);not null;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ReviewSession) TableName() string {
	return "review_sessions"
}

// SessionEvent is one turn of the review conversation. Compaction replaces a
// run of old turns with a single summary event.
type SessionEvent struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Turn      int       `gorm:"not null"`
	Role      string    `gorm:"type:varchar(16);not null"` // user | model | summary
	Content   string    `gorm:"type:text"`
	Compacted bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SessionEvent) TableName() string {
	return "session_events"
}
