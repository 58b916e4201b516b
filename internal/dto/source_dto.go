package dto

import (
	"time"

	"github.com/google/uuid"
)

type PubMedSearchRequest struct {
	Query      string `json:"query" validate:"required"`
	MaxResults int    `json:"max_results" validate:"omitempty,min=1,max=50"`
}

type PubMedArticleResponse struct {
	PMID     string `json:"pmid"`
	Title    string `json:"title"`
	Authors  string `json:"authors"` // first 3 + "et al."
	Year     string `json:"year"`    // 4-digit year or "Unknown"
	Abstract string `json:"abstract"`
}

type RegisterPubMedRequest struct {
	PMID string `json:"pmid" validate:"required"`
}

type RegisterSourceResponse struct {
	Id             uuid.UUID `json:"id"`
	SourceId       string    `json:"source_id"` // "PMID:<id>" or "pdf_<hash>"
	SourceType     string    `json:"source_type"`
	Title          string    `json:"title"`
	AlreadyExisted bool      `json:"already_existed"`
	ExtractionJob  bool      `json:"extraction_queued"`
}

// PublishExtractTripletsMessage is the async job payload queued after a
// source is registered.
type PublishExtractTripletsMessage struct {
	SourceId uuid.UUID `json:"source_id"`
}

type ShowSourceResponse struct {
	Id              uuid.UUID  `json:"id"`
	SourceId        string     `json:"source_id"`
	SourceType      string     `json:"source_type"`
	Title           string     `json:"title"`
	Authors         string     `json:"authors"`
	PublicationYear string     `json:"publication_year"`
	ContentPreview  string     `json:"content_preview"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}
