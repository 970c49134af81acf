package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Greedy outer match: first "{" through last "}", across newlines. Fragile for
// nested braces in surrounding prose, but kept as-is for compatibility with
// existing caller expectations.
var jsonSpanRe = regexp.MustCompile(`(?s)\{.*\}`)

// FindJSONValue recovers a JSON value from a free-form model reply. The whole
// reply is tried first; if it is not valid JSON, the greedy brace span is
// tried instead. Returns the raw candidate bytes, or ok=false when neither
// parses. Note the whole-reply attempt wins even for non-object JSON; callers
// apply their own shape validation.
func FindJSONValue(reply string) ([]byte, bool) {
	trimmed := strings.TrimSpace(reply)
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), true
	}
	if span := jsonSpanRe.FindString(reply); span != "" && json.Valid([]byte(span)) {
		return []byte(span), true
	}
	return nil, false
}
