package entity

import (
	"time"

	"github.com/google/uuid"
)

type Source struct {
	Id              uuid.UUID
	SourceId        string
	SourceType      string
	Title           string
	Authors         string
	PublicationYear *int
	Content         string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}

const (
	SourceTypePubMed = "pubmed"
	SourceTypePDF    = "pdf"
)
