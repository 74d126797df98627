// Package htmltomarkdown renders HTML as Markdown for the chunking
// engine, so chunk text matches what a text-first reader would consume.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/agentready"
)

// Ensure Converter implements agentready.Converter at compile time.
var _ agentready.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter with table support, since tables
// carry chunk-relevant structure.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// Convert transforms HTML content into Markdown. Runs of blank lines are
// collapsed so the chunker's blank-line block splitting stays stable.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", agentready.Errorf(agentready.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return excessBlankLines.ReplaceAllString(result, "\n\n"), nil
}
