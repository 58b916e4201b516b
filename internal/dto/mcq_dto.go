package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateMCQRequest struct {
	SourceId    string `json:"source_id" validate:"required"` // "PMID:<id>" or "pdf_<hash>"
	Instruction string `json:"instruction"`                   // optional reviewer guidance for the critique rounds
	Model       string `json:"model"`                         // optional model override
}

type MCQResponse struct {
	Id            uuid.UUID  `json:"id"`
	Stem          string     `json:"stem"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectOption int        `json:"correct_option"`
	SourceId      string     `json:"source_id"`
	TripletIds    []string   `json:"triplet_ids"`
	VisualPrompt  string     `json:"visual_prompt"`
	ImagePath     string     `json:"image_path,omitempty"`
	Status        string     `json:"status"`
	Model         string     `json:"model"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

type RefineMCQRequest struct {
	Id       uuid.UUID
	Feedback string `json:"feedback" validate:"required"`
	Model    string `json:"model"` // optional model override
}

type UpdateMCQStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required,oneof=draft approved rejected"`
}

type GenerateImageRequest struct {
	Id   uuid.UUID
	Size string `json:"size"` // "WxH" or "W:H", defaults applied when empty or junk
}

type GenerateImageResponse struct {
	Id        uuid.UUID `json:"id"`
	ImagePath string    `json:"image_path"`
}
