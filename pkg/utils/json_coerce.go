package utils

import "strings"

// StripCodeFences removes a markdown code fence wrapper from LLM output
// so the remaining text can be fed to a JSON parser. Handles an optional
// "json" language hint after the opening fence.
func StripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(raw), "json") {
		raw = strings.TrimSpace(raw[4:])
	}
	return raw
}
