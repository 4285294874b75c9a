package ai

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// objectPattern matches from the first '{' to the last '}', across newlines.
var objectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSONObject recovers a JSON object from model output. The whole text is tried
// first, then the widest brace-delimited substring.
func extractJSONObject(text string) (json.RawMessage, error) {
	if obj, ok := asObject(cleanJSONString(text)); ok {
		return obj, nil
	}
	if m := objectPattern.FindString(text); m != "" {
		if obj, ok := asObject(m); ok {
			return obj, nil
		}
	}
	return nil, ErrMalformedOutput
}

func asObject(s string) (json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return nil, false
	}
	return json.RawMessage(buf.Bytes()), true
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
