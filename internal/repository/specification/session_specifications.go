package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByUser filters review sessions by their owning user identifier
type ByUser struct {
	UserId string
}

func (s ByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// BySessionKey filters by the external "session_<unix>" identifier
type BySessionKey struct {
	SessionId string
}

func (s BySessionKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// BySession filters events by session row
type BySession struct {
	SessionId uuid.UUID
}

func (s BySession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// Uncompacted keeps only live (not summarized-away) events
type Uncompacted struct{}

func (s Uncompacted) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("compacted = ?", false)
}
