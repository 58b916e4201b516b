package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Triplet struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Subject          string         `gorm:"type:varchar(255);not null;index:idx_triplet_key,unique,where:deleted_at IS NULL"`
	Action           string         `gorm:"type:varchar(255);not null;index:idx_triplet_key,unique,where:deleted_at IS NULL"`
	Object           string         `gorm:"type:varchar(255);not null;index:idx_triplet_key,unique,where:deleted_at IS NULL"`
	Relation         string         `gorm:"type:varchar(64)"` // SNOMED-like verb
	SourceId         uuid.UUID      `gorm:"type:uuid;not null;index;index:idx_triplet_key,unique,where:deleted_at IS NULL"`
	ContextSentences string         `gorm:"type:text"`                                 // JSON array of verbatim sentences
	SchemaValid      bool           `gorm:"default:false"`
	Status           string         `gorm:"type:varchar(16);not null;default:pending"` // pending | accepted | rejected
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Triplet) TableName() string {
	return "triplets"
}
