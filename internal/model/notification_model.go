package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an ephemeral push payload delivered over the
// WebSocket hub. It is not persisted.
type Notification struct {
	ID        uuid.UUID              `json:"id"`
	UserID    string                 `json:"user_id"` // empty for broadcasts
	TypeCode  string                 `json:"type_code"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
