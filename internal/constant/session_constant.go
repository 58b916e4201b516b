package constant

const (
	// Compaction folds older turns into a summary event every
	// CompactionInterval turns, keeping CompactionOverlap recent turns
	// verbatim.
	SessionCompactionInterval = 5
	SessionCompactionOverlap  = 2

	SessionSummaryPromptV1 = `Summarize the review conversation below into a compact briefing that keeps:
- which sources and questions were discussed,
- decisions made (approvals, rejections, edits),
- any open reviewer instructions.

Be terse. Plain text only.

Conversation:
%s`
)
