package entity

import (
	"time"

	"github.com/google/uuid"
)

type MCQ struct {
	Id            uuid.UUID
	Stem          string
	Question      string
	Options       []string
	CorrectOption int
	SourceId      uuid.UUID
	VisualPrompt  string
	ImagePath     string
	Status        string
	Model         string
	TripletIds    []uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}

const (
	MCQStatusDraft    = "draft"
	MCQStatusApproved = "approved"
	MCQStatusRejected = "rejected"
)

// MCQOptionCount is fixed: five options, exactly one correct.
const MCQOptionCount = 5
