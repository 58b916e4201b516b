package entity

import (
	"time"

	"github.com/google/uuid"
)

type Triplet struct {
	Id               uuid.UUID
	Subject          string
	Action           string
	Object           string
	Relation         string
	SourceId         uuid.UUID
	ContextSentences []string
	SchemaValid      bool
	Status           string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}

const (
	TripletStatusPending  = "pending"
	TripletStatusAccepted = "accepted"
	TripletStatusRejected = "rejected"
)

type TripletEmbedding struct {
	Id             uuid.UUID
	TripletId      uuid.UUID
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
}
