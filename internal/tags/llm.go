package tags

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/ratemycollege/ratemy/internal/adapter"
)

// SuggestLLM asks a completion model for up to n short tags describing the
// review text. The prompt is truncated to maxPromptTokens so long reviews
// stay inside the model's budget. The response must be a JSON array of
// strings; anything else is an error, and callers should fall back to
// Extract.
func SuggestLLM(ctx context.Context, llm adapter.LLMAdapter, text string, n, maxPromptTokens int) ([]string, error) {
	if n <= 0 {
		n = 5
	}
	if maxPromptTokens <= 0 {
		maxPromptTokens = 1500
	}

	text = truncateToTokens(text, maxPromptTokens)

	prompt := fmt.Sprintf(`From the college review below, extract up to %d short tags a student browsing reviews would find useful: specific places, activities, or qualities (e.g. "study spaces", "dining hall", "late night food").

Return ONLY a compact JSON array of lowercase strings. No prose, no markdown, no '#' prefixes. If nothing qualifies, return [].

--- REVIEW ---
%s`, n, text)

	resp, err := llm.Complete(ctx, adapter.CompletionRequest{
		UserMessage: prompt,
		MaxTokens:   256,
	})
	if err != nil {
		return nil, fmt.Errorf("tags: llm suggest: %w", err)
	}

	parsed, err := parseTagArray(resp)
	if err != nil {
		return nil, fmt.Errorf("tags: llm suggest: %w", err)
	}
	if len(parsed) > n {
		parsed = parsed[:n]
	}
	return parsed, nil
}

// parseTagArray pulls the first JSON array out of a model response, tolerating
// surrounding prose or code fences.
func parseTagArray(resp string) ([]string, error) {
	start := strings.Index(resp, "[")
	end := strings.LastIndex(resp, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var raw []string
	if err := json.Unmarshal([]byte(resp[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	var out []string
	for _, t := range raw {
		t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#"))
		if t != "" {
			out = append(out, strings.ToLower(t))
		}
	}
	return out, nil
}

// promptEncoding lazily loads the cl100k_base tokenizer. It approximates
// token counts well enough for prompt budgeting across all providers.
var promptEncoding = sync.OnceValues(func() (*tiktoken.Tiktoken, error) {
	return tiktoken.GetEncoding("cl100k_base")
})

// truncateToTokens cuts s to at most maxTokens tokens. If the encoding
// cannot be loaded, s is returned unchanged.
func truncateToTokens(s string, maxTokens int) string {
	enc, err := promptEncoding()
	if err != nil {
		return s
	}
	tokens := enc.Encode(s, nil, nil)
	if len(tokens) <= maxTokens {
		return s
	}
	return enc.Decode(tokens[:maxTokens])
}
