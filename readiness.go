package agentready

import (
	"math"
	"sort"
	"strings"
)

// Dimension is one of the five weighted sub-scores composing the overall
// readiness score.
type Dimension string

// Readiness dimensions.
const (
	DimensionContentQuality    Dimension = "content-quality"
	DimensionDiscoverability   Dimension = "discoverability"
	DimensionExtractability    Dimension = "extractability"
	DimensionComprehensibility Dimension = "comprehensibility"
	DimensionTrustworthiness   Dimension = "trustworthiness"
)

// Dimensions lists every readiness dimension.
var Dimensions = []Dimension{
	DimensionContentQuality,
	DimensionDiscoverability,
	DimensionExtractability,
	DimensionComprehensibility,
	DimensionTrustworthiness,
}

// dimensionCategories maps each dimension to the finding categories it is
// computed from.
var dimensionCategories = map[Dimension][]Category{
	DimensionContentQuality:    {CategoryReadability, CategoryExtraction},
	DimensionDiscoverability:   {CategoryCrawlability, CategoryTechnical},
	DimensionExtractability:    {CategoryExtraction, CategoryChunking},
	DimensionComprehensibility: {CategoryReadability, CategoryChunking, CategoryKnowledgeGraph},
	DimensionTrustworthiness:   {CategoryHallucinationRisk},
}

// DimensionScore is one readiness dimension's score with qualitative notes.
type DimensionScore struct {
	Dimension      Dimension `json:"dimension"`
	Score          float64   `json:"score"`
	Status         string    `json:"status"`
	Strengths      []string  `json:"strengths,omitempty"`
	Weaknesses     []string  `json:"weaknesses,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
}

// QuickWin is a high-impact, low-effort finding surfaced for prioritized
// remediation.
type QuickWin struct {
	IssueID     string   `json:"issueId"`
	Title       string   `json:"title"`
	ImpactScore int      `json:"impactScore"`
	Effort      string   `json:"effort"` // low, medium, high
	Category    Category `json:"category"`
}

// RoadmapItem references a finding placed in a remediation tier.
type RoadmapItem struct {
	IssueID     string   `json:"issueId"`
	Title       string   `json:"title"`
	Severity    Severity `json:"severity"`
	ImpactScore int      `json:"impactScore"`
}

// Roadmap groups findings into three remediation tiers.
type Roadmap struct {
	Immediate []RoadmapItem `json:"immediate,omitempty"`
	ShortTerm []RoadmapItem `json:"shortTerm,omitempty"`
	LongTerm  []RoadmapItem `json:"longTerm,omitempty"`
}

// AgentPerspective summarizes the page from a consuming agent's point of
// view: four capability flags plus an overall confidence.
type AgentPerspective struct {
	CanDiscover     bool     `json:"canDiscover"`
	CanExtract      bool     `json:"canExtract"`
	CanUnderstand   bool     `json:"canUnderstand"`
	CanTrust        bool     `json:"canTrust"`
	Confidence      float64  `json:"confidence"`
	BlockingReasons []string `json:"blockingReasons,omitempty"`
}

// ScoringResult is the full output of one scoring pass. It is entirely
// derived and read-only; identical inputs always produce identical results.
type ScoringResult struct {
	OverallScore     float64          `json:"overallScore"`
	Grade            string           `json:"grade"`
	Dimensions       []DimensionScore `json:"dimensions"`
	CategoryScores   []CategoryScore  `json:"categoryScores"`
	QuickWins        []QuickWin       `json:"quickWins,omitempty"`
	Roadmap          Roadmap          `json:"roadmap"`
	Percentile       int              `json:"percentile"`
	AgentPerspective AgentPerspective `json:"agentPerspective"`
}

// ScoreInput carries the findings plus optional external signals into the
// scoring pass.
type ScoreInput struct {
	// Issues is the full finding list from the rule runner.
	Issues []Issue

	// HallucinationScore is the 0-100 trust score derived from the external
	// hallucination analysis, when available.
	HallucinationScore *float64

	// HallucinationUnavailable marks that hallucination analysis was
	// requested but produced no data. The trustworthiness dimension then
	// falls back to the configured baseline.
	HallucinationUnavailable bool

	// HistoricalScores holds previous audits' overall scores for the
	// percentile benchmark. May be empty.
	HistoricalScores []float64
}

// Score turns a finding list into the five-dimension readiness result.
// It is a pure function: it reads nothing but its arguments and the
// config, and identical inputs yield identical results regardless of the
// order findings were produced in.
func Score(input ScoreInput, cfg ScoreConfig) (*ScoringResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dims := make([]DimensionScore, 0, len(Dimensions))
	byDimension := make(map[Dimension]float64, len(Dimensions))
	for _, dim := range Dimensions {
		ds := scoreDimension(dim, input, cfg)
		byDimension[dim] = ds.Score
		dims = append(dims, ds)
	}

	var overall float64
	for _, dim := range Dimensions {
		overall += byDimension[dim] * cfg.DimensionWeights[dim]
	}
	overall = math.Round(overall*10) / 10

	result := &ScoringResult{
		OverallScore:     overall,
		Grade:            Grade(overall),
		Dimensions:       dims,
		CategoryScores:   CategoryScores(input.Issues, cfg),
		QuickWins:        QuickWins(input.Issues, cfg),
		Roadmap:          BuildRoadmap(input.Issues, cfg),
		Percentile:       EstimatePercentile(overall, input.HistoricalScores),
		AgentPerspective: agentPerspective(byDimension, cfg),
	}
	return result, nil
}

// scoreDimension computes one dimension from its category subset.
func scoreDimension(dim Dimension, input ScoreInput, cfg ScoreConfig) DimensionScore {
	subset := issuesInCategories(input.Issues, dimensionCategories[dim])

	score := penaltyScore(subset, cfg, cfg.EmptyCategoryScore)

	if dim == DimensionTrustworthiness {
		switch {
		case input.HallucinationScore != nil:
			// Blend the deterministic penalty with the external analysis.
			score = clampScore((score + *input.HallucinationScore) / 2)
		case input.HallucinationUnavailable:
			score = cfg.TrustworthinessBaseline
		}
	}

	strengths, weaknesses := dimensionNotes(dim, input.Issues)

	return DimensionScore{
		Dimension:      dim,
		Score:          score,
		Status:         dimensionStatus(score),
		Strengths:      strengths,
		Weaknesses:     weaknesses,
		Recommendation: dimensionRecommendation(dim, score, weaknesses),
	}
}

func issuesInCategories(issues []Issue, cats []Category) []Issue {
	var subset []Issue
	for _, issue := range issues {
		for _, cat := range cats {
			if issue.Category == cat {
				subset = append(subset, issue)
				break
			}
		}
	}
	return subset
}

func dimensionStatus(score float64) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	case score >= 60:
		return "needs-improvement"
	default:
		return "poor"
	}
}

// dimensionMarkers maps dimensions to marker finding IDs. Absence of the
// marker reads as a strength, presence as a weakness.
var dimensionMarkers = map[Dimension][]struct {
	issueID  string
	strength string
	weakness string
}{
	DimensionContentQuality: {
		{"missing-h1", "Clear top-level heading", "No top-level heading for the main topic"},
		{"thin-content", "Substantial body content", "Body content is too thin to summarize"},
		{"low-text-ratio", "Content dominates over markup", "Markup outweighs readable text"},
	},
	DimensionDiscoverability: {
		{"missing-title", "Descriptive page title present", "Page title missing"},
		{"missing-meta-description", "Meta description present", "No meta description for previews"},
		{"robots-noindex", "Page is indexable", "Page blocks indexing via robots meta"},
	},
	DimensionExtractability: {
		{"missing-main-landmark", "Main content landmark present", "No main semantic container"},
		{"content-in-iframe", "Content served inline", "Content hidden inside iframes"},
		{"image-missing-alt", "Images carry alt text", "Images lack alt text"},
	},
	DimensionComprehensibility: {
		{"heading-structure", "Coherent heading hierarchy", "Heading hierarchy is broken"},
		{"missing-structured-data", "Structured data describes the page", "No structured data for machine readers"},
		{"oversized-section", "Sections sized for bounded readers", "Sections exceed typical context budgets"},
	},
	DimensionTrustworthiness: {
		{"missing-author", "Author attribution present", "No author attribution"},
		{"missing-dates", "Publication dates present", "No publication or modification dates"},
	},
}

// dimensionNotes derives strengths and weaknesses from marker findings.
func dimensionNotes(dim Dimension, issues []Issue) (strengths, weaknesses []string) {
	present := make(map[string]bool, len(issues))
	for _, issue := range issues {
		present[issue.ID] = true
	}

	for _, marker := range dimensionMarkers[dim] {
		if present[marker.issueID] {
			weaknesses = append(weaknesses, marker.weakness)
		} else {
			strengths = append(strengths, marker.strength)
		}
	}
	return strengths, weaknesses
}

func dimensionRecommendation(dim Dimension, score float64, weaknesses []string) string {
	if score >= 90 {
		return "Maintain current quality."
	}
	if len(weaknesses) > 0 {
		return "Address first: " + weaknesses[0]
	}
	switch dim {
	case DimensionContentQuality:
		return "Expand and tighten the primary content."
	case DimensionDiscoverability:
		return "Complete the page's discovery metadata."
	case DimensionExtractability:
		return "Move content into server-rendered semantic markup."
	case DimensionComprehensibility:
		return "Restructure content into clearly headed sections."
	case DimensionTrustworthiness:
		return "Add provenance metadata (author, dates, sources)."
	}
	return ""
}

// Grade maps an overall score to a letter grade using fixed thresholds.
// The table is ordered, exhaustive, and non-overlapping.
func Grade(score float64) string {
	switch {
	case score >= 97:
		return "A+"
	case score >= 93:
		return "A"
	case score >= 90:
		return "A-"
	case score >= 87:
		return "B+"
	case score >= 83:
		return "B"
	case score >= 80:
		return "B-"
	case score >= 77:
		return "C+"
	case score >= 73:
		return "C"
	case score >= 70:
		return "C-"
	case score >= 67:
		return "D+"
	case score >= 63:
		return "D"
	case score >= 60:
		return "D-"
	default:
		return "F"
	}
}

// easyFixKeywords mark findings whose remediation is typically mechanical.
var easyFixKeywords = []string{"missing", "add", "meta", "alt", "label", "lang", "viewport"}

// architectureKeywords mark remediations that imply structural work.
var architectureKeywords = []string{"restructure", "redesign", "rewrite", "migrate", "architecture", "server-side"}

// mediumEffortKeywords mark remediations that imply focused rework.
var mediumEffortKeywords = []string{"refactor", "rework", "convert", "replace"}

// QuickWins selects high-impact, low-effort findings: impact at or above
// the configured minimum whose title or remediation contains an easy-fix
// keyword, sorted by impact descending and capped.
func QuickWins(issues []Issue, cfg ScoreConfig) []QuickWin {
	var wins []QuickWin
	for _, issue := range issues {
		if issue.ImpactScore < cfg.QuickWinMinImpact {
			continue
		}
		text := strings.ToLower(issue.Title + " " + issue.Remediation)
		if !containsAny(text, easyFixKeywords) {
			continue
		}
		wins = append(wins, QuickWin{
			IssueID:     issue.ID,
			Title:       issue.Title,
			ImpactScore: issue.ImpactScore,
			Effort:      estimateEffort(text),
			Category:    issue.Category,
		})
	}

	sort.SliceStable(wins, func(i, j int) bool {
		if wins[i].ImpactScore != wins[j].ImpactScore {
			return wins[i].ImpactScore > wins[j].ImpactScore
		}
		return wins[i].IssueID < wins[j].IssueID
	})

	if len(wins) > cfg.QuickWinLimit {
		wins = wins[:cfg.QuickWinLimit]
	}
	return wins
}

func estimateEffort(text string) string {
	if containsAny(text, architectureKeywords) {
		return "high"
	}
	if containsAny(text, mediumEffortKeywords) {
		return "medium"
	}
	return "low"
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// BuildRoadmap buckets findings into three remediation tiers:
// critical findings (or high severity with impact >= 20) are immediate;
// high severity with impact in [15,20) is short-term; medium severity with
// impact >= 10 is long-term. Each bucket is capped.
func BuildRoadmap(issues []Issue, cfg ScoreConfig) Roadmap {
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ImpactScore != sorted[j].ImpactScore {
			return sorted[i].ImpactScore > sorted[j].ImpactScore
		}
		return sorted[i].ID < sorted[j].ID
	})

	var roadmap Roadmap
	for _, issue := range sorted {
		item := RoadmapItem{
			IssueID:     issue.ID,
			Title:       issue.Title,
			Severity:    issue.Severity,
			ImpactScore: issue.ImpactScore,
		}

		switch {
		case issue.Severity == SeverityCritical,
			issue.Severity == SeverityHigh && issue.ImpactScore >= 20:
			if len(roadmap.Immediate) < cfg.RoadmapLimit {
				roadmap.Immediate = append(roadmap.Immediate, item)
			}
		case issue.Severity == SeverityHigh && issue.ImpactScore >= 15:
			if len(roadmap.ShortTerm) < cfg.RoadmapLimit {
				roadmap.ShortTerm = append(roadmap.ShortTerm, item)
			}
		case issue.Severity == SeverityMedium && issue.ImpactScore >= 10:
			if len(roadmap.LongTerm) < cfg.RoadmapLimit {
				roadmap.LongTerm = append(roadmap.LongTerm, item)
			}
		}
	}
	return roadmap
}

// agentPerspective derives the four capability flags from dimension scores.
func agentPerspective(scores map[Dimension]float64, cfg ScoreConfig) AgentPerspective {
	p := AgentPerspective{
		CanDiscover:   scores[DimensionDiscoverability] >= cfg.AgentFlagThreshold,
		CanExtract:    scores[DimensionExtractability] >= cfg.AgentFlagThreshold,
		CanUnderstand: scores[DimensionComprehensibility] >= cfg.AgentFlagThreshold,
		CanTrust:      scores[DimensionTrustworthiness] >= cfg.AgentFlagThreshold,
	}

	p.Confidence = (scores[DimensionComprehensibility] +
		scores[DimensionExtractability] +
		scores[DimensionContentQuality]) / 3 / 100

	if !p.CanDiscover {
		p.BlockingReasons = append(p.BlockingReasons, "Crawlers are unlikely to find or index this page.")
	}
	if !p.CanExtract {
		p.BlockingReasons = append(p.BlockingReasons, "A non-interactive reader cannot recover much of the content.")
	}
	if !p.CanUnderstand {
		p.BlockingReasons = append(p.BlockingReasons, "The content structure resists bounded-context comprehension.")
	}
	if !p.CanTrust {
		p.BlockingReasons = append(p.BlockingReasons, "The page lacks the provenance signals agents rely on.")
	}
	return p
}

// benchmarkDistribution approximates the population of audited pages when
// no scan history is available. Pairs of (score, percentile).
var benchmarkDistribution = [][2]float64{
	{95, 99}, {90, 95}, {85, 88}, {80, 78}, {75, 65},
	{70, 52}, {65, 40}, {60, 30}, {50, 18}, {40, 9},
}

// EstimatePercentile estimates where the score sits among audited pages.
// With history it is the exact fraction of historical scores at or below
// the given score; without history it interpolates a fixed distribution.
func EstimatePercentile(score float64, historical []float64) int {
	if len(historical) > 0 {
		below := 0
		for _, h := range historical {
			if h <= score {
				below++
			}
		}
		return int(math.Round(100 * float64(below) / float64(len(historical))))
	}

	for _, entry := range benchmarkDistribution {
		if score >= entry[0] {
			return int(entry[1])
		}
	}
	return 3
}
