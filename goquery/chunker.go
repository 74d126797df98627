package goquery

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/agentready"
)

// minHeadingsForSections is the heading count at which splitting on
// headings beats splitting on paragraph budgets.
const minHeadingsForSections = 2

// Ensure Chunker implements agentready.Chunker at compile time.
var _ agentready.Chunker = (*Chunker)(nil)

// Chunker segments a page's primary content into bounded markdown
// chunks. With enough headings it splits on section boundaries, so each
// chunk keeps its heading as context; otherwise it packs paragraphs
// under the token budget.
//
// Chunking is deterministic: identical input produces identical chunk
// boundaries, IDs, and estimates.
type Chunker struct {
	extractor agentready.Extractor
	converter agentready.Converter
	tokens    agentready.TokenCounter
}

// NewChunker creates a Chunker. The extractor isolates the primary
// content; the converter renders it as markdown. A nil token counter
// falls back to the heuristic estimator.
func NewChunker(extractor agentready.Extractor, converter agentready.Converter, tokens agentready.TokenCounter) *Chunker {
	if tokens == nil {
		tokens = &agentready.HeuristicTokenCounter{}
	}
	return &Chunker{extractor: extractor, converter: converter, tokens: tokens}
}

// Chunk implements agentready.Chunker.
func (c *Chunker) Chunk(ctx context.Context, doc *agentready.Document) (*agentready.ChunkingAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	maxTokens := doc.Config.MaxChunkTokens
	if maxTokens <= 0 {
		maxTokens = agentready.DefaultMaxChunkTokens
	}

	markdown, err := c.contentMarkdown(doc)
	if err != nil {
		return nil, err
	}

	blocks := splitBlocks(markdown)
	if len(blocks) == 0 {
		analysis := &agentready.ChunkingAnalysis{Strategy: agentready.StrategyParagraphBased}
		analysis.Reduce(maxTokens)
		return analysis, nil
	}

	strategy := agentready.StrategyParagraphBased
	if countHeadingBlocks(blocks) >= minHeadingsForSections {
		strategy = agentready.StrategyHeadingBased
	}

	var groups []blockGroup
	if strategy == agentready.StrategyHeadingBased {
		groups = groupByHeading(ctx, blocks, maxTokens, c.tokens)
	} else {
		groups = groupByBudget(ctx, blocks, maxTokens, c.tokens)
	}

	noisy := duplicateBlocks(blocks)
	analysis := &agentready.ChunkingAnalysis{Strategy: strategy}
	anchors := sectionAnchors(markdown)
	for i, group := range groups {
		analysis.Chunks = append(analysis.Chunks, c.buildChunk(ctx, i, group, anchors, noisy))
	}
	analysis.Reduce(maxTokens)
	return analysis, nil
}

// contentMarkdown extracts the primary content and renders it as
// markdown. Extraction failure falls back to the raw page: a chunking
// report over the whole page beats no report.
func (c *Chunker) contentMarkdown(doc *agentready.Document) (string, error) {
	html := doc.RawHTML
	if c.extractor != nil {
		if result, err := c.extractor.Extract(doc.RawHTML); err == nil && result != nil && strings.TrimSpace(result.ContentHTML) != "" {
			html = result.ContentHTML
		}
	}

	if c.converter == nil {
		return "", agentready.Errorf(agentready.EINTERNAL, "chunker has no markdown converter")
	}
	markdown, err := c.converter.Convert(html)
	if err != nil {
		return "", agentready.Errorf(agentready.EINTERNAL, "converting content to markdown: %v", err)
	}
	return markdown, nil
}

// blockGroup is a run of markdown blocks forming one chunk, with the
// heading it falls under, if any.
type blockGroup struct {
	heading      string
	headingLevel int
	blocks       []string
}

func (g blockGroup) text() string {
	return strings.Join(g.blocks, "\n\n")
}

var blockHeadingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)`)

// splitBlocks splits markdown into blocks at blank lines, keeping fenced
// code blocks intact.
func splitBlocks(markdown string) []string {
	var blocks []string
	var current []string
	inFence := false

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			current = append(current, line)
			continue
		}
		if strings.TrimSpace(line) == "" && !inFence {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

func countHeadingBlocks(blocks []string) int {
	count := 0
	for _, block := range blocks {
		if blockHeadingRe.MatchString(block) {
			count++
		}
	}
	return count
}

// groupByHeading starts a new group at every heading block. A section
// whose body exceeds the token budget is split further at block
// boundaries, with each continuation keeping the section's heading.
func groupByHeading(ctx context.Context, blocks []string, maxTokens int, tokens agentready.TokenCounter) []blockGroup {
	var groups []blockGroup
	current := blockGroup{}
	currentTokens := 0

	flush := func() {
		if len(current.blocks) > 0 {
			groups = append(groups, current)
		}
		current = blockGroup{heading: current.heading, headingLevel: current.headingLevel}
		currentTokens = 0
	}

	for _, block := range blocks {
		if m := blockHeadingRe.FindStringSubmatch(block); m != nil {
			flush()
			current.heading = strings.TrimSpace(m[2])
			current.headingLevel = len(m[1])
			current.blocks = append(current.blocks, block)
			currentTokens, _ = tokens.CountTokens(ctx, block)
			continue
		}

		blockTokens, _ := tokens.CountTokens(ctx, block)
		if currentTokens+blockTokens > maxTokens && len(current.blocks) > 0 {
			flush()
		}
		current.blocks = append(current.blocks, block)
		currentTokens += blockTokens
	}
	flush()
	return groups
}

// groupByBudget packs consecutive blocks until the next block would
// exceed the token budget. A single block over budget still becomes its
// own chunk; blocks are never split mid-paragraph.
func groupByBudget(ctx context.Context, blocks []string, maxTokens int, tokens agentready.TokenCounter) []blockGroup {
	var groups []blockGroup
	current := blockGroup{}
	currentTokens := 0

	for _, block := range blocks {
		blockTokens, _ := tokens.CountTokens(ctx, block)
		if currentTokens+blockTokens > maxTokens && len(current.blocks) > 0 {
			groups = append(groups, current)
			current = blockGroup{}
			currentTokens = 0
		}
		current.blocks = append(current.blocks, block)
		currentTokens += blockTokens
	}
	if len(current.blocks) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// duplicateBlocks returns the hashes of blocks whose normalized text
// appears more than once in the document. Repetition is the strongest
// single-page boilerplate signal available without a crawl.
func duplicateBlocks(blocks []string) map[uint64]bool {
	counts := make(map[uint64]int, len(blocks))
	for _, block := range blocks {
		counts[blockHash(block)]++
	}
	noisy := make(map[uint64]bool)
	for hash, n := range counts {
		if n > 1 {
			noisy[hash] = true
		}
	}
	return noisy
}

func blockHash(block string) uint64 {
	return xxhash.Sum64String(strings.Join(strings.Fields(block), " "))
}

// buildChunk assembles a Chunk from a block group. Chunk IDs embed a
// content hash so identical content re-chunks to identical IDs.
func (c *Chunker) buildChunk(ctx context.Context, index int, group blockGroup, anchors map[string]string, noisy map[uint64]bool) agentready.Chunk {
	text := group.text()
	estimate, _ := c.tokens.CountTokens(ctx, text)

	noiseChars := 0
	for _, block := range group.blocks {
		if noisy[blockHash(block)] {
			noiseChars += len(block)
		}
	}
	noiseRatio := 0.0
	if len(text) > 0 {
		noiseRatio = float64(noiseChars) / float64(len(text))
	}

	chunk := agentready.Chunk{
		ID:            fmt.Sprintf("chunk-%03d-%08x", index+1, xxhash.Sum64String(text)&0xffffffff),
		TokenEstimate: estimate,
		Text:          text,
		Heading:       group.heading,
		HeadingLevel:  group.headingLevel,
		NoiseRatio:    noiseRatio,
		WordCount:     len(strings.Fields(text)),
		CharCount:     len(text),
		HasCode:       agentready.HasCodeBlock(text),
		HasList:       agentready.HasListItems(text),
		HasTable:      agentready.HasTableRows(text),
	}
	if anchor, ok := anchors[group.heading]; ok && group.heading != "" {
		chunk.StartSelector = "#" + anchor
	}
	return chunk
}

// sectionAnchors maps section titles to their generated anchors.
// Duplicate titles keep the first anchor, matching how fragment links
// resolve.
func sectionAnchors(markdown string) map[string]string {
	anchors := make(map[string]string)
	for _, section := range agentready.ExtractSections(markdown) {
		if _, ok := anchors[section.Title]; !ok {
			anchors[section.Title] = section.Anchor
		}
	}
	return anchors
}
