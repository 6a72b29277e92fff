package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// ChatModel is a chat-based LLM used for grading answers. Concrete providers
// live in subpackages.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ErrUnavailable marks provider failures worth retrying: network errors,
// rate limits and 5xx responses.
var ErrUnavailable = errors.New("llm unavailable")

// DecodeJSON parses a model reply into out, tolerating prose or a fenced
// block around the JSON object.
func DecodeJSON(raw string, out any) error {
	raw = strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(raw), out); err == nil {
		return nil
	}
	i := strings.Index(raw, "{")
	j := strings.LastIndex(raw, "}")
	if i < 0 || j <= i {
		return errors.New("no JSON object in model reply")
	}
	return json.Unmarshal([]byte(raw[i:j+1]), out)
}
