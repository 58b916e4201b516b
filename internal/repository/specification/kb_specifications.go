package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySourceKey filters sources by their external key ("PMID:..." / "pdf_...")
type BySourceKey struct {
	SourceId string
}

func (s BySourceKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_id = ?", s.SourceId)
}

// ByStatus filters triplets or MCQs by review status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// BySource filters by owning source row
type BySource struct {
	SourceId uuid.UUID
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_id = ?", s.SourceId)
}

// TripletKey matches the upsert identity (subject, action, object, source)
type TripletKey struct {
	Subject  string
	Action   string
	Object   string
	SourceId uuid.UUID
}

func (s TripletKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject = ? AND action = ? AND object = ? AND source_id = ?",
		s.Subject, s.Action, s.Object, s.SourceId)
}

// SameSubject is distractor query 1: same subject, any action/object
type SameSubject struct {
	Subject string
}

func (s SameSubject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject = ?", s.Subject)
}

// SameActionObject is distractor query 2: same action+object, any subject
type SameActionObject struct {
	Action string
	Object string
}

func (s SameActionObject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("action = ? AND object = ?", s.Action, s.Object)
}
