// Package slog provides logging decorators for the audit collaborators.
// Each decorator wraps an interface with timing and outcome logging and
// delegates everything else unchanged.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/agentready"
)

// Ensure decorators implement their interfaces at compile time.
var (
	_ agentready.Fetcher              = (*LoggingFetcher)(nil)
	_ agentready.RuleRunner           = (*LoggingRunner)(nil)
	_ agentready.Chunker              = (*LoggingChunker)(nil)
	_ agentready.ExtractabilityMapper = (*LoggingMapper)(nil)
)

// LoggingFetcher wraps a Fetcher with fetch timing and status logging.
type LoggingFetcher struct {
	next   agentready.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next agentready.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*agentready.Document, error) {
	begin := time.Now()
	doc, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch failed",
			"url", url,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	f.logger.Info("fetched page",
		"url", doc.URL,
		"status", doc.StatusCode,
		"bytes", len(doc.RawHTML),
		"duration", time.Since(begin),
	)
	return doc, nil
}

func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingRunner wraps a RuleRunner with timing and finding-count logging.
type LoggingRunner struct {
	next   agentready.RuleRunner
	logger *slog.Logger
}

// NewLoggingRunner creates a new LoggingRunner.
func NewLoggingRunner(next agentready.RuleRunner, logger *slog.Logger) *LoggingRunner {
	return &LoggingRunner{next: next, logger: logger}
}

func (r *LoggingRunner) Run(ctx context.Context, doc *agentready.Document) []agentready.Issue {
	begin := time.Now()
	issues := r.next.Run(ctx, doc)
	r.logger.Info("rules evaluated",
		"url", doc.URL,
		"findings", len(issues),
		"duration", time.Since(begin),
	)
	return issues
}

// LoggingChunker wraps a Chunker with strategy and chunk-count logging.
type LoggingChunker struct {
	next   agentready.Chunker
	logger *slog.Logger
}

// NewLoggingChunker creates a new LoggingChunker.
func NewLoggingChunker(next agentready.Chunker, logger *slog.Logger) *LoggingChunker {
	return &LoggingChunker{next: next, logger: logger}
}

func (c *LoggingChunker) Chunk(ctx context.Context, doc *agentready.Document) (*agentready.ChunkingAnalysis, error) {
	begin := time.Now()
	analysis, err := c.next.Chunk(ctx, doc)
	if err != nil {
		c.logger.Error("chunking failed",
			"url", doc.URL,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	c.logger.Info("content chunked",
		"url", doc.URL,
		"strategy", analysis.Strategy,
		"chunks", analysis.TotalChunks,
		"tokens", analysis.TotalTokens,
		"duration", time.Since(begin),
	)
	return analysis, nil
}

// LoggingMapper wraps an ExtractabilityMapper with score logging.
type LoggingMapper struct {
	next   agentready.ExtractabilityMapper
	logger *slog.Logger
}

// NewLoggingMapper creates a new LoggingMapper.
func NewLoggingMapper(next agentready.ExtractabilityMapper, logger *slog.Logger) *LoggingMapper {
	return &LoggingMapper{next: next, logger: logger}
}

func (m *LoggingMapper) Map(ctx context.Context, doc *agentready.Document) (*agentready.ExtractabilityMap, error) {
	begin := time.Now()
	result, err := m.next.Map(ctx, doc)
	if err != nil {
		m.logger.Error("extractability mapping failed",
			"url", doc.URL,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	m.logger.Info("extractability mapped",
		"url", doc.URL,
		"nodes", result.TotalNodes,
		"score", result.ExtractabilityScore,
		"duration", time.Since(begin),
	)
	return result, nil
}
