package dto

import (
	"time"

	"github.com/google/uuid"
)

type TripletResponse struct {
	Id               uuid.UUID  `json:"id"`
	Subject          string     `json:"subject"`
	Action           string     `json:"action"`
	Object           string     `json:"object"`
	Relation         string     `json:"relation"`
	SourceId         uuid.UUID  `json:"source_id"`
	ContextSentences []string   `json:"context_sentences"`
	SchemaValid      bool       `json:"schema_valid"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

type UpdateTripletStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

type EditTripletRequest struct {
	Id               uuid.UUID
	Subject          string   `json:"subject" validate:"required"`
	Action           string   `json:"action" validate:"required"`
	Object           string   `json:"object" validate:"required"`
	Relation         string   `json:"relation"`
	ContextSentences []string `json:"context_sentences"`
}

type DistractorQueryRequest struct {
	Subject string `json:"subject"`
	Action  string `json:"action"`
	Object  string `json:"object"`
}

type DistractorQueryResponse struct {
	Triplets []TripletResponse `json:"triplets"`
	Count    int               `json:"count"`
}

type ProvenanceCheckResponse struct {
	TripletId   uuid.UUID       `json:"triplet_id"`
	AllVerified bool            `json:"all_verified"`
	Sentences   []SentenceCheck `json:"sentences"`
}

type SentenceCheck struct {
	Sentence string `json:"sentence"`
	Verified bool   `json:"verified"`
}
