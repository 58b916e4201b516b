package utils

// SplitText cuts a document into chunks of roughly chunkSize characters
// for per-chunk extraction prompts. Consecutive chunks share overlap
// characters so a fact straddling a boundary stays intact in at least
// one chunk. Slicing is rune-based; abstracts and extracted PDF text
// regularly carry non-ASCII symbols.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		// An overlap at or above the chunk size would never advance.
		step = chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
