package store

// CritiqueNote records one critic pass over a draft question.
type CritiqueNote struct {
	Round    int    `json:"round"`
	Feedback string `json:"feedback"`
}

// Draft holds the in-memory working state of a question between the
// generation pipeline and subsequent refine calls. It is keyed by the
// persisted question id and carries the source excerpt so refinement
// does not have to re-read the source row.
type Draft struct {
	ID     string `json:"id"` // MCQ id
	UserID string `json:"user_id"`
	State  string `json:"state"` // "DRAFTING" | "REVIEWED"

	// The source excerpt the question was authored against, already
	// truncated to the refinement window.
	SourceExcerpt string `json:"source_excerpt"`

	// Critic feedback accumulated across refinement rounds.
	Critiques []CritiqueNote `json:"critiques"`

	// Number of critique/refine rounds applied so far.
	Rounds int `json:"rounds"`

	LastInstruction string `json:"last_instruction"`
}

const (
	StateDrafting = "DRAFTING"
	StateReviewed = "REVIEWED"
)
