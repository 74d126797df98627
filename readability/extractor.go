// Package readability extracts primary content using the readability
// heuristics. It is the default Extractor behind the chunking engine.
package readability

import (
	"strings"

	"github.com/fwojciec/agentready"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements agentready.Extractor at compile time.
var _ agentready.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*agentready.ExtractResult, error) {
	if rawHTML == "" {
		return nil, agentready.Errorf(agentready.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, agentready.Errorf(agentready.EINTERNAL, "readability extraction: %v", err)
	}

	return &agentready.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
