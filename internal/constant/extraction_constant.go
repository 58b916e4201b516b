package constant

const (
	// Long sources are chunked before extraction so a single prompt
	// never exceeds the context window.
	ExtractionChunkSize    = 6000
	ExtractionChunkOverlap = 400

	TripletExtractionPromptV1 = `You are a medical knowledge extraction engine. From the source text below,
extract factual relation triplets in SNOMED style.

Return STRICT JSON with this schema:
{
  "triplets": [
    {
      "subject": "...",
      "action": "...",
      "object": "...",
      "relation": "SNOMED-like verb",
      "context_sentences": ["verbatim sentence 1", "verbatim sentence 2"]
    }
  ]
}

Rules:
- Every triplet must state a TRUE fact from the text, never inferred knowledge.
- context_sentences must contain 2-4 sentences copied VERBATIM from the text.
- Use concise clinical terms for subject/action/object.
- DO NOT add commentary outside the JSON.

Source text:
"""%s"""`
)
