package events

import "time"

const (
	TypeSourceRegistered = "SOURCE_REGISTERED"
	TypeMCQApproved      = "MCQ_APPROVED"
	TypeImageAttached    = "IMAGE_ATTACHED"
)

// NewSourceRegistered fires when a PubMed article or PDF upload has been
// ingested into the knowledge base.
func NewSourceRegistered(sourceId, sourceType, title, userId string) Event {
	return BaseEvent{
		Type: TypeSourceRegistered,
		Data: map[string]interface{}{
			"source_id":   sourceId,
			"source_type": sourceType,
			"title":       title,
			"user_id":     userId,
		},
		OccurredAt: time.Now(),
	}
}

// NewMCQApproved fires when a reviewer approves a question.
func NewMCQApproved(mcqId, sourceId string) Event {
	return BaseEvent{
		Type: TypeMCQApproved,
		Data: map[string]interface{}{
			"mcq_id":    mcqId,
			"source_id": sourceId,
		},
		OccurredAt: time.Now(),
	}
}

// NewImageAttached fires when a generated image has been stored for a question.
func NewImageAttached(mcqId, imagePath string) Event {
	return BaseEvent{
		Type: TypeImageAttached,
		Data: map[string]interface{}{
			"mcq_id":     mcqId,
			"image_path": imagePath,
		},
		OccurredAt: time.Now(),
	}
}
