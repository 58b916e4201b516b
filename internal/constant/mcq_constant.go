package constant

const (
	// Article text is truncated before prompting; refinement uses a
	// smaller window since the previous JSON rides along.
	MCQGenerateContentLimit = 8000
	MCQRefineContentLimit   = 6000

	// Critique/refine runs a fixed number of rounds, no convergence check.
	MCQRefineRounds = 2

	MCQAuthorPromptV1 = `You are a medical MCQ author. Using the article below, produce:
1. A single multiple-choice question (5 options, exactly one correct).
2. At least one SNOMED-style relation triplet describing the knowledge assessed.
3. An optimized visual prompt describing an illustration that matches the scenario.

Return STRICT JSON with this schema:
{
  "mcq": {
    "stem": "...",
    "question": "...",
    "options": ["A", "B", "C", "D", "E"],
    "correct_option": 0
  },
  "triplets": [
    {
      "subject": "...",
      "action": "...",
      "object": "...",
      "relation": "SNOMED-like verb"
    }
  ],
  "visual_prompt": "text describing the desired medical illustration"
}

Rules:
- "correct_option" is an index 0-4.
- Options must be medically plausible.
- Triplets must reflect TRUE statements from the article (at least one triplet).
- visual_prompt should be concise (<= 80 words).
- DO NOT add commentary outside the JSON.

Article title: %s

Article content:
"""%s"""`

	MCQCriticPromptV1 = `You are a strict medical exam reviewer. Evaluate the MCQ below against the
source article and the reviewer instruction. Point out factual errors, implausible
distractors, ambiguous wording, and schema violations.

Reviewer instruction:
%s

MCQ JSON:
%s

Article snippet:
"""%s"""

Respond with a short, actionable critique in plain text. No JSON, no preamble.`

	MCQRefinerPromptV1 = `The reviewer provided feedback for an MCQ. Return updated JSON with the same schema as before.

Feedback:
%s

Previous response JSON:
%s

Article title: %s
Article snippet:
"""%s"""

DO NOT add commentary outside the JSON.`
)
