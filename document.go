package agentready

import (
	"context"
	"time"
)

// Document represents one fetched web page plus its request context.
// It is the immutable input to every analysis pass: rule plugins, the
// chunking engine, and the extractability mapper all read from the same
// Document and never modify it.
type Document struct {
	// URL is the final request URL after redirects.
	URL string `json:"url"`

	// RawHTML is the page markup exactly as fetched.
	RawHTML string `json:"rawHtml"`

	// StatusCode is the HTTP status observed during the fetch.
	// A status >= 400 does not abort analysis; it surfaces as a Finding.
	StatusCode int `json:"statusCode"`

	// FetchedAt is the time the page was retrieved.
	FetchedAt time.Time `json:"fetchedAt"`

	// Config holds per-audit options.
	Config Config `json:"config"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.Config.MaxChunkTokens < 0 {
		return Errorf(EINVALID, "max chunk tokens must not be negative")
	}
	return nil
}

// Config holds the recognized per-audit options.
type Config struct {
	// MaxChunkTokens bounds the token budget per chunk for paragraph-based
	// chunking. Zero means DefaultMaxChunkTokens.
	MaxChunkTokens int `json:"maxChunkTokens,omitempty"`

	// EnableChunking controls whether the chunking analysis runs.
	EnableChunking bool `json:"enableChunking"`

	// EnableExtractability controls whether the extractability mapping runs.
	EnableExtractability bool `json:"enableExtractability"`

	// MinImpactScore drops findings below this impact. Applied by the
	// orchestrator after scoring, never by the engines.
	MinImpactScore int `json:"minImpactScore,omitempty"`

	// MinConfidence drops findings below this confidence (0.0-1.0).
	// Applied by the orchestrator after scoring.
	MinConfidence float64 `json:"minConfidence,omitempty"`

	// MaxIssues caps the number of reported findings. Zero means no cap.
	// Applied by the orchestrator after scoring.
	MaxIssues int `json:"maxIssues,omitempty"`

	// LLM configures the optional external language-model collaborator.
	// Consumed only by out-of-core analyzers (e.g. gemini/).
	LLM *LLMConfig `json:"llm,omitempty"`
}

// DefaultMaxChunkTokens is the token budget per chunk when unset.
const DefaultMaxChunkTokens = 1200

// DefaultConfig returns a Config with the standard audit options.
func DefaultConfig() Config {
	return Config{
		MaxChunkTokens:       DefaultMaxChunkTokens,
		EnableChunking:       true,
		EnableExtractability: true,
	}
}

// LLMConfig identifies the external language-model service used for the
// optional enrichment sections. The deterministic core never reads it.
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	BaseURL  string `json:"baseUrl,omitempty"`
	APIKey   string `json:"-"`
}

// Fetcher retrieves a page and wraps it in a Document.
// Implementations may use plain HTTP or browser automation to handle
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the URL and returns a Document carrying the raw HTML
	// and observed status code. A non-2xx status is not an error: the
	// Document is still returned so analysis can proceed best-effort.
	Fetch(ctx context.Context, url string) (*Document, error)

	// Close releases fetcher resources.
	Close() error
}
