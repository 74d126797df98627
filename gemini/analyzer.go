// Package gemini implements the optional language-model collaborator
// using Google Gemini. Everything here is enrichment: a failure or
// timeout drops the LLM section of the scan, never the scan itself.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/agentready"
	"google.golang.org/genai"
)

// DefaultModel is used when the scan config names no model.
const DefaultModel = "gemini-2.5-flash"

// maxPromptChars bounds how much page text goes into the prompt.
const maxPromptChars = 60000

// Ensure Analyzer implements agentready.Analyzer at compile time.
var _ agentready.Analyzer = (*Analyzer)(nil)

// Analyzer implements agentready.Analyzer using Google Gemini.
type Analyzer struct {
	client    *genai.Client
	converter agentready.Converter
	model     string
}

// NewAnalyzer creates a new Analyzer. The converter renders the page as
// markdown before prompting; Gemini summarizes what an agent would
// actually read, not the raw markup.
func NewAnalyzer(client *genai.Client, converter agentready.Converter, model string) *Analyzer {
	if model == "" {
		model = DefaultModel
	}
	return &Analyzer{client: client, converter: converter, model: model}
}

// llmResponse is the JSON shape requested from the model.
type llmResponse struct {
	Summary   string   `json:"summary"`
	KeyTopics []string `json:"keyTopics"`
}

// Analyze produces the LLM-backed summary section for a document.
func (a *Analyzer) Analyze(ctx context.Context, doc *agentready.Document) (*agentready.LLMReport, error) {
	if doc.RawHTML == "" {
		return nil, agentready.Errorf(agentready.EINVALID, "document has no content")
	}

	markdown, err := a.converter.Convert(doc.RawHTML)
	if err != nil {
		return nil, err
	}
	if len(markdown) > maxPromptChars {
		markdown = markdown[:maxPromptChars]
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(doc.URL, markdown)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, agentready.Errorf(agentready.EINTERNAL, "gemini returned nil result")
	}

	var parsed llmResponse
	if err := json.Unmarshal([]byte(result.Text()), &parsed); err != nil {
		return nil, agentready.Errorf(agentready.EINTERNAL, "parsing gemini response: %v", err)
	}

	return &agentready.LLMReport{
		Provider:  "gemini",
		Model:     a.model,
		Summary:   parsed.Summary,
		KeyTopics: parsed.KeyTopics,
	}, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You summarize web pages for automated consumers. Base the summary only on the page content provided. Respond with JSON.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"summary":   {Type: genai.TypeString},
				"keyTopics": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"summary", "keyTopics"},
		},
	}
}

// BuildUserPrompt builds the user prompt containing the page content.
func BuildUserPrompt(url, markdown string) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	fmt.Fprintf(&sb, "<url>%s</url>\n", url)
	fmt.Fprintf(&sb, "<content>%s</content>\n", markdown)
	sb.WriteString("</page>\n\n")
	sb.WriteString("Summarize this page in 2-3 sentences and list its key topics.")
	return sb.String()
}
