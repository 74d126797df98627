package agentready

import (
	"context"
	"encoding/json"
	"time"
)

// Optional section names flagged in ScanResult.Sections.
const (
	SectionChunking       = "chunking"
	SectionExtractability = "extractability"
	SectionLLM            = "llm"
)

// ScanResult is the orchestrator's aggregate output for one audit.
// It is the stable, formatter-agnostic shape consumed by exporters; every
// Issue field round-trips through its JSON serialization unchanged.
type ScanResult struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`

	Issues []Issue `json:"issues"`

	// Scores is the legacy simple per-category penalty score.
	Scores map[Category]int `json:"scores"`

	// Scoring is the detailed five-dimension readiness result. Always
	// present: a scan always completes scoring, even over an error page.
	Scoring *ScoringResult `json:"scoring"`

	Chunking       *ChunkingAnalysis  `json:"chunking,omitempty"`
	Extractability *ExtractabilityMap `json:"extractability,omitempty"`

	// LLM-backed sections are opaque pass-through payloads from the
	// external collaborator; absent when the collaborator is disabled,
	// unavailable, or timed out.
	LLM                 *LLMReport      `json:"llm,omitempty"`
	HallucinationReport json.RawMessage `json:"hallucinationReport,omitempty"`
	MirrorReport        json.RawMessage `json:"mirrorReport,omitempty"`

	// Sections flags which optional sections succeeded.
	Sections map[string]bool `json:"sections"`
}

// LLMReport is the narrow response contract of the external language-model
// collaborator. The deterministic core treats it as opaque.
type LLMReport struct {
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	KeyTopics []string `json:"keyTopics,omitempty"`
}

// Analyzer is the request/response contract with the external
// language-model service. Implementations live outside the deterministic
// core (e.g. gemini/).
type Analyzer interface {
	// Analyze produces the optional LLM-backed summary for a document.
	// A failure or timeout means the section is omitted, never a fatal
	// scan error.
	Analyze(ctx context.Context, doc *Document) (*LLMReport, error)
}

// ScanSummary is the persisted trace of one completed audit: identity and
// headline numbers only, never page content.
type ScanSummary struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	OverallScore float64   `json:"overallScore"`
	Grade        string    `json:"grade"`
	IssueCount   int       `json:"issueCount"`
	ScannedAt    time.Time `json:"scannedAt"`
}

// Validate returns an error if the summary contains invalid fields.
func (s *ScanSummary) Validate() error {
	if s.ID == "" {
		return Errorf(EINVALID, "scan summary ID required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "scan summary URL required")
	}
	return nil
}

// ScanHistoryService persists scan summaries and serves the historical
// score distribution behind the percentile benchmark.
type ScanHistoryService interface {
	// CreateScanSummary records a completed audit.
	CreateScanSummary(ctx context.Context, summary *ScanSummary) error

	// FindScanSummaries returns summaries matching the filter, most
	// recent first.
	FindScanSummaries(ctx context.Context, filter ScanSummaryFilter) ([]*ScanSummary, error)

	// OverallScores returns every recorded overall score.
	OverallScores(ctx context.Context) ([]float64, error)
}

// ScanSummaryFilter filters FindScanSummaries.
type ScanSummaryFilter struct {
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
