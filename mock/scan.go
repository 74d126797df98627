package mock

import (
	"context"

	"github.com/fwojciec/agentready"
)

var _ agentready.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of agentready.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*agentready.Document, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*agentready.Document, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ agentready.Chunker = (*Chunker)(nil)

// Chunker is a mock implementation of agentready.Chunker.
type Chunker struct {
	ChunkFn func(ctx context.Context, doc *agentready.Document) (*agentready.ChunkingAnalysis, error)
}

func (c *Chunker) Chunk(ctx context.Context, doc *agentready.Document) (*agentready.ChunkingAnalysis, error) {
	return c.ChunkFn(ctx, doc)
}

var _ agentready.ExtractabilityMapper = (*ExtractabilityMapper)(nil)

// ExtractabilityMapper is a mock implementation of
// agentready.ExtractabilityMapper.
type ExtractabilityMapper struct {
	MapFn func(ctx context.Context, doc *agentready.Document) (*agentready.ExtractabilityMap, error)
}

func (m *ExtractabilityMapper) Map(ctx context.Context, doc *agentready.Document) (*agentready.ExtractabilityMap, error) {
	return m.MapFn(ctx, doc)
}

var _ agentready.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of agentready.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, doc *agentready.Document) (*agentready.LLMReport, error)
}

func (a *Analyzer) Analyze(ctx context.Context, doc *agentready.Document) (*agentready.LLMReport, error) {
	return a.AnalyzeFn(ctx, doc)
}

var _ agentready.ScanHistoryService = (*ScanHistoryService)(nil)

// ScanHistoryService is a mock implementation of
// agentready.ScanHistoryService.
type ScanHistoryService struct {
	CreateScanSummaryFn func(ctx context.Context, summary *agentready.ScanSummary) error
	FindScanSummariesFn func(ctx context.Context, filter agentready.ScanSummaryFilter) ([]*agentready.ScanSummary, error)
	OverallScoresFn     func(ctx context.Context) ([]float64, error)
}

func (s *ScanHistoryService) CreateScanSummary(ctx context.Context, summary *agentready.ScanSummary) error {
	return s.CreateScanSummaryFn(ctx, summary)
}

func (s *ScanHistoryService) FindScanSummaries(ctx context.Context, filter agentready.ScanSummaryFilter) ([]*agentready.ScanSummary, error) {
	return s.FindScanSummariesFn(ctx, filter)
}

func (s *ScanHistoryService) OverallScores(ctx context.Context) ([]float64, error) {
	return s.OverallScoresFn(ctx)
}
