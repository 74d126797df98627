package agentready

import "context"

// Chunking strategies.
const (
	StrategyHeadingBased   = "heading-based"
	StrategyParagraphBased = "paragraph-based"
)

// Chunk is a bounded segment of page text approximating one retrieval or
// context unit. Text is markdown so flags and downstream consumption match
// what an LLM reader would actually see.
type Chunk struct {
	ID            string  `json:"id"`
	StartSelector string  `json:"startSelector,omitempty"`
	EndSelector   string  `json:"endSelector,omitempty"`
	TokenEstimate int     `json:"tokenEstimate"`
	Text          string  `json:"text"`
	Heading       string  `json:"heading,omitempty"`
	HeadingLevel  int     `json:"headingLevel,omitempty"`
	NoiseRatio    float64 `json:"noiseRatio"`
	WordCount     int     `json:"wordCount"`
	CharCount     int     `json:"charCount"`
	HasCode       bool    `json:"hasCode"`
	HasList       bool    `json:"hasList"`
	HasTable      bool    `json:"hasTable"`
}

// ChunkingAnalysis aggregates the chunk list with totals and the strategy
// that produced it. Aggregates are plain reductions over Chunks.
type ChunkingAnalysis struct {
	Chunks         []Chunk `json:"chunks"`
	Strategy       string  `json:"strategy"`
	TotalChunks    int     `json:"totalChunks"`
	TotalTokens    int     `json:"totalTokens"`
	TotalWords     int     `json:"totalWords"`
	AvgTokens      float64 `json:"avgTokens"`
	AvgNoiseRatio  float64 `json:"avgNoiseRatio"`
	HeadedChunks   int     `json:"headedChunks"`
	OversizedCount int     `json:"oversizedCount"`
}

// Reduce fills the aggregate fields from the chunk list.
// maxTokens is the per-chunk budget used to count oversized chunks.
func (a *ChunkingAnalysis) Reduce(maxTokens int) {
	a.TotalChunks = len(a.Chunks)
	a.TotalTokens = 0
	a.TotalWords = 0
	a.HeadedChunks = 0
	a.OversizedCount = 0

	var noise float64
	for _, c := range a.Chunks {
		a.TotalTokens += c.TokenEstimate
		a.TotalWords += c.WordCount
		noise += c.NoiseRatio
		if c.Heading != "" {
			a.HeadedChunks++
		}
		if maxTokens > 0 && c.TokenEstimate > maxTokens {
			a.OversizedCount++
		}
	}

	if a.TotalChunks > 0 {
		a.AvgTokens = float64(a.TotalTokens) / float64(a.TotalChunks)
		a.AvgNoiseRatio = noise / float64(a.TotalChunks)
	} else {
		a.AvgTokens = 0
		a.AvgNoiseRatio = 0
	}
}

// Chunker segments a document's primary text content into bounded units.
type Chunker interface {
	// Chunk deterministically segments the document. Re-chunking identical
	// input yields identical boundaries and token counts.
	Chunk(ctx context.Context, doc *Document) (*ChunkingAnalysis, error)
}
