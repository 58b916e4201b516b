package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MCQ struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Stem          string         `gorm:"type:text;not null"`
	Question      string         `gorm:"type:text;not null"`
	Options       string         `gorm:"type:text;not null"` // JSON array of exactly 5 options
	CorrectOption int            `gorm:"not null"`           // index 0-4
	SourceId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	VisualPrompt  string         `gorm:"type:text"`
	ImagePath     string         `gorm:"type:varchar(255)"`
	Status        string         `gorm:"type:varchar(16);not null;default:draft"` // draft | approved | rejected
	Model         string         `gorm:"type:varchar(64)"`                        // text model that authored the current revision
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (MCQ) TableName() string {
	return "mcqs"
}

// MCQTriplet links a question to the knowledge it assesses.
type MCQTriplet struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MCQId     uuid.UUID `gorm:"type:uuid;not null;index"`
	TripletId uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (MCQTriplet) TableName() string {
	return "mcq_triplets"
}
