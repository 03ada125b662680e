package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrInvalidJSON = errors.New("invalid JSON response from AI")

// DecodeJSON parses a model reply into out, tolerating markdown code fences and
// prose around the JSON object or array.
func DecodeJSON(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(cleaned, pair[0])
		end := strings.LastIndex(cleaned, pair[1])
		if start >= 0 && end > start {
			if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err == nil {
				return nil
			}
		}
	}
	return ErrInvalidJSON
}
