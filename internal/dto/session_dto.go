package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	SessionId string `json:"session_id"` // "session_<unix>", returned even if persistence failed
	Persisted bool   `json:"persisted"`
}

type SessionResponse struct {
	Id        uuid.UUID `json:"id"`
	SessionId string    `json:"session_id"`
	UserId    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type AppendEventRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=user model"`
	Content   string `json:"content" validate:"required"`
}

type SessionEventResponse struct {
	Id        uuid.UUID `json:"id"`
	Turn      int       `json:"turn"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Compacted bool      `json:"compacted"`
	CreatedAt time.Time `json:"created_at"`
}

type RestoreSessionResponse struct {
	Session SessionResponse        `json:"session"`
	Events  []SessionEventResponse `json:"events"`
}
