package mock

import (
	"context"

	"github.com/fwojciec/agentready"
)

var _ agentready.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of agentready.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*agentready.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*agentready.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ agentready.Converter = (*Converter)(nil)

// Converter is a mock implementation of agentready.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ agentready.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of agentready.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
