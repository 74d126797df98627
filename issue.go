package agentready

import "time"

// Severity classifies how strongly a finding affects agent readiness.
type Severity string

// Severity levels, ordered from least to most severe.
const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists every valid severity. The order is ascending.
var Severities = []Severity{
	SeverityInfo,
	SeverityLow,
	SeverityMedium,
	SeverityHigh,
	SeverityCritical,
}

// Valid reports whether s is a recognized severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Multiplier returns the severity weight used by the detailed category
// score formula. The mapping is total over valid severities.
func (s Severity) Multiplier() float64 {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 0.5
	case SeverityInfo:
		return 0
	}
	return 0
}

// Rank returns an ordinal for sorting (critical highest).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	case SeverityInfo:
		return 0
	}
	return -1
}

// Category is the audit domain a finding belongs to.
type Category string

// Audit categories.
const (
	CategoryReadability       Category = "readability"
	CategoryCrawlability      Category = "crawlability"
	CategoryChunking          Category = "chunking"
	CategoryExtraction        Category = "extraction"
	CategoryTechnical         Category = "technical"
	CategoryAccessibility     Category = "accessibility"
	CategoryKnowledgeGraph    Category = "knowledge-graph"
	CategoryHallucinationRisk Category = "hallucination-risk"
	CategoryMisc              Category = "misc"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryReadability,
	CategoryCrawlability,
	CategoryChunking,
	CategoryExtraction,
	CategoryTechnical,
	CategoryAccessibility,
	CategoryKnowledgeGraph,
	CategoryHallucinationRisk,
	CategoryMisc,
}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Weight returns the category's relative weight in aggregate reporting.
// Weights are presentation hints only; dimension scoring uses its own
// fixed weights (see ScoreConfig).
func (c Category) Weight() float64 {
	switch c {
	case CategoryReadability:
		return 1.0
	case CategoryCrawlability:
		return 1.0
	case CategoryChunking:
		return 0.9
	case CategoryExtraction:
		return 1.0
	case CategoryTechnical:
		return 0.8
	case CategoryAccessibility:
		return 0.7
	case CategoryKnowledgeGraph:
		return 0.8
	case CategoryHallucinationRisk:
		return 0.9
	case CategoryMisc:
		return 0.5
	}
	return 0
}

// Location pinpoints where in the page a finding applies.
type Location struct {
	URL      string `json:"url,omitempty"`
	Selector string `json:"selector,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// Issue is one unit of audit output: a specific detected problem with
// severity, impact, and remediation. Issues are created only by rule
// execution and are never mutated afterward.
type Issue struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description,omitempty"`
	Remediation string    `json:"remediation,omitempty"`
	ImpactScore int       `json:"impactScore"`
	Location    *Location `json:"location,omitempty"`
	Evidence    []string  `json:"evidence,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Confidence  float64   `json:"confidence"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the issue contains invalid fields.
func (i *Issue) Validate() error {
	if i.ID == "" {
		return Errorf(EINVALID, "issue ID required")
	}
	if !i.Category.Valid() {
		return Errorf(EINVALID, "issue category %q not recognized", i.Category)
	}
	if !i.Severity.Valid() {
		return Errorf(EINVALID, "issue severity %q not recognized", i.Severity)
	}
	if i.ImpactScore < 0 || i.ImpactScore > 100 {
		return Errorf(EINVALID, "issue impact score must be within [0,100]")
	}
	if i.Confidence < 0 || i.Confidence > 1 {
		return Errorf(EINVALID, "issue confidence must be within [0.0,1.0]")
	}
	return nil
}
