package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// TripletEmbedding is only migrated/used on Postgres (requires the vector extension).
type TripletEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TripletId      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Document       string          `gorm:"type:text"` // "subject action object" rendering fed to the embedder
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (TripletEmbedding) TableName() string {
	return "triplet_embeddings"
}
