package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Source struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SourceId        string         `gorm:"type:varchar(64);not null;uniqueIndex"` // "PMID:<id>" or "pdf_<hash>"
	SourceType      string         `gorm:"type:varchar(16);not null"`             // "pubmed" | "pdf"
	Title           string         `gorm:"type:text;not null"`
	Authors         string         `gorm:"type:text"`
	PublicationYear *int           `gorm:"type:int"`
	Content         string         `gorm:"type:text"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Source) TableName() string {
	return "sources"
}
