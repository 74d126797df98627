package agentready

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Scanner orchestrates one audit: fetch, concurrent analysis passes,
// scoring, and optional persistence. The deterministic passes (rules,
// chunking, extractability) run concurrently over the same immutable
// Document; the LLM collaborator runs alongside them and fails soft.
type Scanner struct {
	fetcher Fetcher
	runner  RuleRunner
	logger  *slog.Logger

	// Optional analysis passes. A nil field disables the pass regardless
	// of the document config.
	Chunker  Chunker
	Mapper   ExtractabilityMapper
	Analyzer Analyzer

	// History, when set, receives a summary of every completed scan and
	// supplies the score distribution behind the percentile benchmark.
	// All history calls are best-effort: a storage failure never fails
	// the scan.
	History ScanHistoryService

	// Config is applied to every fetched document.
	Config Config

	// ScoreConfig holds the scoring constants. Zero value means defaults.
	ScoreConfig ScoreConfig

	// newID generates scan IDs; swapped in tests.
	newID func() string
}

// NewScanner creates a Scanner over the required collaborators.
func NewScanner(fetcher Fetcher, runner RuleRunner, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		fetcher:     fetcher,
		runner:      runner,
		logger:      logger,
		Config:      DefaultConfig(),
		ScoreConfig: DefaultScoreConfig(),
		newID:       uuid.NewString,
	}
}

// Scan fetches the URL and runs the full audit.
//
// A fetch transport failure is fatal; an HTTP error status is not. The
// error page is analyzed like any other document and the status surfaces
// as a single crawlability-adjacent finding.
func (s *Scanner) Scan(ctx context.Context, url string) (*ScanResult, error) {
	if url == "" {
		return nil, Errorf(EINVALID, "scan URL required")
	}
	if s.fetcher == nil {
		return nil, Errorf(EINTERNAL, "scanner has no fetcher")
	}

	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	doc.Config = s.Config
	return s.ScanDocument(ctx, doc)
}

// ScanDocument runs the full audit over an already-fetched document.
func (s *Scanner) ScanDocument(ctx context.Context, doc *Document) (*ScanResult, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	result := &ScanResult{
		ID:        s.id(),
		URL:       doc.URL,
		Timestamp: time.Now().UTC(),
		Sections:  make(map[string]bool),
	}

	var (
		issues   []Issue
		chunking *ChunkingAnalysis
		extract  *ExtractabilityMap
		llm      *LLMReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		issues = s.runner.Run(gctx, doc)
		return nil
	})

	runChunking := doc.Config.EnableChunking && s.Chunker != nil
	if runChunking {
		g.Go(func() error {
			analysis, err := s.Chunker.Chunk(gctx, doc)
			if err != nil {
				s.logger.Warn("chunking failed", "url", doc.URL, "error", err)
				return nil
			}
			chunking = analysis
			return nil
		})
	}

	runExtract := doc.Config.EnableExtractability && s.Mapper != nil
	if runExtract {
		g.Go(func() error {
			m, err := s.Mapper.Map(gctx, doc)
			if err != nil {
				s.logger.Warn("extractability mapping failed", "url", doc.URL, "error", err)
				return nil
			}
			extract = m
			return nil
		})
	}

	runLLM := doc.Config.LLM != nil && s.Analyzer != nil
	if runLLM {
		g.Go(func() error {
			report, err := s.Analyzer.Analyze(gctx, doc)
			if err != nil {
				s.logger.Warn("llm analysis failed", "url", doc.URL, "error", err)
				return nil
			}
			llm = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if doc.StatusCode >= 400 {
		issues = append(issues, httpErrorIssue(doc))
	}
	issues = filterIssues(issues, doc.Config)

	result.Issues = issues
	result.Scores = LegacyCategoryScores(issues)
	if runChunking {
		result.Chunking = chunking
		result.Sections[SectionChunking] = chunking != nil
	}
	if runExtract {
		result.Extractability = extract
		result.Sections[SectionExtractability] = extract != nil
	}
	if runLLM {
		result.LLM = llm
		result.Sections[SectionLLM] = llm != nil
	}

	scoring, err := Score(ScoreInput{
		Issues:                   issues,
		HallucinationUnavailable: runLLM && llm == nil,
		HistoricalScores:         s.historicalScores(ctx),
	}, s.scoreConfig())
	if err != nil {
		return nil, err
	}
	result.Scoring = scoring

	s.record(ctx, result)
	return result, nil
}

// Close releases the fetcher.
func (s *Scanner) Close() error {
	if s.fetcher == nil {
		return nil
	}
	return s.fetcher.Close()
}

func (s *Scanner) id() string {
	if s.newID == nil {
		return uuid.NewString()
	}
	return s.newID()
}

func (s *Scanner) scoreConfig() ScoreConfig {
	if s.ScoreConfig.DimensionWeights == nil {
		return DefaultScoreConfig()
	}
	return s.ScoreConfig
}

func (s *Scanner) historicalScores(ctx context.Context) []float64 {
	if s.History == nil {
		return nil
	}
	scores, err := s.History.OverallScores(ctx)
	if err != nil {
		s.logger.Warn("loading historical scores failed", "error", err)
		return nil
	}
	return scores
}

// record persists the scan summary, best-effort.
func (s *Scanner) record(ctx context.Context, result *ScanResult) {
	if s.History == nil {
		return
	}
	summary := &ScanSummary{
		ID:           result.ID,
		URL:          result.URL,
		OverallScore: result.Scoring.OverallScore,
		Grade:        result.Scoring.Grade,
		IssueCount:   len(result.Issues),
		ScannedAt:    result.Timestamp,
	}
	if err := s.History.CreateScanSummary(ctx, summary); err != nil {
		s.logger.Warn("recording scan summary failed", "url", result.URL, "error", err)
	}
}

// httpErrorIssue is the single finding surfaced for an HTTP error page.
func httpErrorIssue(doc *Document) Issue {
	return Issue{
		ID:          "http-error",
		Title:       "HTTP error fetching page",
		Category:    CategoryMisc,
		Severity:    SeverityLow,
		Description: "The server responded with status " + strconv.Itoa(doc.StatusCode) + ". The analysis below reflects the error page, not the intended content.",
		Remediation: "Fix the URL or the server response, then re-scan.",
		ImpactScore: 5,
		Location:    &Location{URL: doc.URL},
		Confidence:  1.0,
		CreatedAt:   time.Now().UTC(),
	}
}

// filterIssues applies the post-scoring presentation filters.
func filterIssues(issues []Issue, cfg Config) []Issue {
	filtered := issues[:0:0]
	for _, issue := range issues {
		if issue.ImpactScore < cfg.MinImpactScore {
			continue
		}
		if issue.Confidence < cfg.MinConfidence {
			continue
		}
		filtered = append(filtered, issue)
	}
	if cfg.MaxIssues > 0 && len(filtered) > cfg.MaxIssues {
		filtered = filtered[:cfg.MaxIssues]
	}
	return filtered
}
