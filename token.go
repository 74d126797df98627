package agentready

import (
	"context"
	"strings"
	"unicode/utf8"
)

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// Ensure HeuristicTokenCounter implements TokenCounter at compile time.
var _ TokenCounter = (*HeuristicTokenCounter)(nil)

// HeuristicTokenCounter estimates token counts without a real tokenizer.
// The estimate is fast, language-agnostic, monotonic in text length, and
// stable for identical input, which is all the chunking engine needs.
type HeuristicTokenCounter struct{}

// CountTokens returns the estimated token count. It never fails.
func (c *HeuristicTokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	return EstimateTokens(text), nil
}

// EstimateTokens approximates how many tokens a tokenizer would produce
// for the text. It blends a character-based estimate (~4 chars per token
// for English-like prose) with a word-based one (~0.75 words per token),
// which tracks real tokenizers closely enough for budget decisions.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	chars := utf8.RuneCountInString(text)
	words := len(strings.Fields(text))

	byChars := float64(chars) / 4.0
	byWords := float64(words) / 0.75

	estimate := int((byChars + byWords) / 2)
	if estimate < 1 {
		return 1
	}
	return estimate
}
