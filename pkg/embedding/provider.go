package embedding

// EmbeddingProvider produces a vector for a text, used to index accepted
// triplets for the similarity distractor fallback. taskType selects the
// provider-side embedding task, e.g. "SEMANTIC_SIMILARITY".
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}
