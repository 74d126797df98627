package agentready_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/agentready"
	"github.com/fwojciec/agentready/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(statusCode int) *mock.Fetcher {
	return &mock.Fetcher{FetchFn: func(_ context.Context, url string) (*agentready.Document, error) {
		return &agentready.Document{
			URL:        url,
			RawHTML:    "<html><body><h1>Title</h1><p>content</p></body></html>",
			StatusCode: statusCode,
			FetchedAt:  time.Now().UTC(),
		}, nil
	}}
}

func newTestRunner(issues ...agentready.Issue) *mock.RuleRunner {
	return &mock.RuleRunner{RunFn: func(context.Context, *agentready.Document) []agentready.Issue {
		return issues
	}}
}

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	t.Run("aggregates all passes into one result", func(t *testing.T) {
		t.Parallel()

		scanner := agentready.NewScanner(newTestFetcher(200), newTestRunner(agentready.Issue{
			ID: "missing-title", Title: "Missing page title",
			Category: agentready.CategoryCrawlability, Severity: agentready.SeverityHigh,
			ImpactScore: 20, Confidence: 1,
		}), nil)
		scanner.Chunker = &mock.Chunker{ChunkFn: func(context.Context, *agentready.Document) (*agentready.ChunkingAnalysis, error) {
			return &agentready.ChunkingAnalysis{Strategy: agentready.StrategyHeadingBased}, nil
		}}
		scanner.Mapper = &mock.ExtractabilityMapper{MapFn: func(context.Context, *agentready.Document) (*agentready.ExtractabilityMap, error) {
			return &agentready.ExtractabilityMap{TotalNodes: 10, ExtractableNodes: 10, ExtractabilityScore: 100}, nil
		}}

		result, err := scanner.Scan(context.Background(), "https://example.com/page")
		require.NoError(t, err)

		assert.NotEmpty(t, result.ID)
		assert.Equal(t, "https://example.com/page", result.URL)
		require.Len(t, result.Issues, 1)
		assert.NotNil(t, result.Scoring)
		assert.Equal(t, 80, result.Scores[agentready.CategoryCrawlability])
		assert.True(t, result.Sections[agentready.SectionChunking])
		assert.True(t, result.Sections[agentready.SectionExtractability])
		assert.NotContains(t, result.Sections, agentready.SectionLLM)
	})

	t.Run("rejects an empty URL", func(t *testing.T) {
		t.Parallel()

		scanner := agentready.NewScanner(newTestFetcher(200), newTestRunner(), nil)
		_, err := scanner.Scan(context.Background(), "")
		assert.Equal(t, agentready.EINVALID, agentready.ErrorCode(err))
	})

	t.Run("an HTTP error page yields exactly one fetch finding", func(t *testing.T) {
		t.Parallel()

		scanner := agentready.NewScanner(newTestFetcher(404), newTestRunner(), nil)

		result, err := scanner.Scan(context.Background(), "https://example.com/missing")
		require.NoError(t, err)

		count := 0
		for _, issue := range result.Issues {
			if issue.ID == "http-error" {
				count++
				assert.Equal(t, agentready.CategoryMisc, issue.Category)
				assert.Equal(t, agentready.SeverityLow, issue.Severity)
				assert.Contains(t, issue.Description, "404")
			}
		}
		assert.Equal(t, 1, count)
		assert.NotNil(t, result.Scoring, "an error page still gets scored")
	})

	t.Run("a chunker failure marks the section false without failing the scan", func(t *testing.T) {
		t.Parallel()

		scanner := agentready.NewScanner(newTestFetcher(200), newTestRunner(), nil)
		scanner.Chunker = &mock.Chunker{ChunkFn: func(context.Context, *agentready.Document) (*agentready.ChunkingAnalysis, error) {
			return nil, agentready.Errorf(agentready.EINTERNAL, "boom")
		}}

		result, err := scanner.Scan(context.Background(), "https://example.com/page")
		require.NoError(t, err)
		assert.False(t, result.Sections[agentready.SectionChunking])
		assert.Nil(t, result.Chunking)
	})

	t.Run("a failed LLM analysis falls back to the trust baseline", func(t *testing.T) {
		t.Parallel()

		scanner := agentready.NewScanner(newTestFetcher(200), newTestRunner(), nil)
		scanner.Config.LLM = &agentready.LLMConfig{Provider: "gemini", Model: "gemini-2.0-flash"}
		scanner.Analyzer = &mock.Analyzer{AnalyzeFn: func(context.Context, *agentready.Document) (*agentready.LLMReport, error) {
			return nil, agentready.Errorf(agentready.EUNAVAILABLE, "timeout")
		}}

		result, err := scanner.Scan(context.Background(), "https://example.com/page")
		require.NoError(t, err)
		assert.False(t, result.Sections[agentready.SectionLLM])

		for _, dim := range result.Scoring.Dimensions {
			if dim.Dimension == agentready.DimensionTrustworthiness {
				assert.InDelta(t, 85.0, dim.Score, 1e-9)
			}
		}
	})

	t.Run("a successful LLM analysis is attached", func(t *testing.T) {
		t.Parallel()

		scanner := agentready.NewScanner(newTestFetcher(200), newTestRunner(), nil)
		scanner.Config.LLM = &agentready.LLMConfig{Provider: "gemini", Model: "gemini-2.0-flash"}
		scanner.Analyzer = &mock.Analyzer{AnalyzeFn: func(context.Context, *agentready.Document) (*agentready.LLMReport, error) {
			return &agentready.LLMReport{Provider: "gemini", Summary: "A docs page."}, nil
		}}

		result, err := scanner.Scan(context.Background(), "https://example.com/page")
		require.NoError(t, err)
		assert.True(t, result.Sections[agentready.SectionLLM])
		require.NotNil(t, result.LLM)
		assert.Equal(t, "A docs page.", result.LLM.Summary)
	})

	t.Run("applies the impact, confidence, and count filters", func(t *testing.T) {
		t.Parallel()

		scanner := agentready.NewScanner(newTestFetcher(200), newTestRunner(
			agentready.Issue{ID: "a", Category: agentready.CategoryReadability, Severity: agentready.SeverityHigh, ImpactScore: 20, Confidence: 1},
			agentready.Issue{ID: "b", Category: agentready.CategoryReadability, Severity: agentready.SeverityLow, ImpactScore: 4, Confidence: 1},
			agentready.Issue{ID: "c", Category: agentready.CategoryReadability, Severity: agentready.SeverityMedium, ImpactScore: 15, Confidence: 0.3},
			agentready.Issue{ID: "d", Category: agentready.CategoryReadability, Severity: agentready.SeverityMedium, ImpactScore: 18, Confidence: 1},
		), nil)
		scanner.Config.MinImpactScore = 10
		scanner.Config.MinConfidence = 0.5
		scanner.Config.MaxIssues = 1

		result, err := scanner.Scan(context.Background(), "https://example.com/page")
		require.NoError(t, err)
		require.Len(t, result.Issues, 1)
		assert.Equal(t, "a", result.Issues[0].ID)
	})

	t.Run("records a summary and uses history for the percentile", func(t *testing.T) {
		t.Parallel()

		var recorded *agentready.ScanSummary
		scanner := agentready.NewScanner(newTestFetcher(200), newTestRunner(), nil)
		scanner.History = &mock.ScanHistoryService{
			CreateScanSummaryFn: func(_ context.Context, summary *agentready.ScanSummary) error {
				recorded = summary
				return nil
			},
			OverallScoresFn: func(context.Context) ([]float64, error) {
				return []float64{10, 20, 30, 40}, nil
			},
		}

		result, err := scanner.Scan(context.Background(), "https://example.com/page")
		require.NoError(t, err)

		require.NotNil(t, recorded)
		assert.Equal(t, result.ID, recorded.ID)
		assert.Equal(t, result.Scoring.OverallScore, recorded.OverallScore)
		assert.Equal(t, 100, result.Scoring.Percentile, "a clean page beats four low historical scores")
	})

	t.Run("a history failure does not fail the scan", func(t *testing.T) {
		t.Parallel()

		scanner := agentready.NewScanner(newTestFetcher(200), newTestRunner(), nil)
		scanner.History = &mock.ScanHistoryService{
			CreateScanSummaryFn: func(context.Context, *agentready.ScanSummary) error {
				return agentready.Errorf(agentready.EUNAVAILABLE, "db locked")
			},
			OverallScoresFn: func(context.Context) ([]float64, error) {
				return nil, agentready.Errorf(agentready.EUNAVAILABLE, "db locked")
			},
		}

		_, err := scanner.Scan(context.Background(), "https://example.com/page")
		require.NoError(t, err)
	})
}
