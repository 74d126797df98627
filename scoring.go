package agentready

import "math"

// ScoreConfig holds the tuned constants behind the scoring model.
//
// The penalty factors, default scores, and dimension weights are empirically
// tuned values preserved for compatibility with earlier audits. They are
// configuration, not law: callers may override them, but DefaultScoreConfig
// is the canonical set.
type ScoreConfig struct {
	// SeverityPenaltyFactor scales each finding's impact*multiplier product
	// in the detailed category formula.
	SeverityPenaltyFactor float64 `json:"severityPenaltyFactor"`

	// EmptyCategoryScore is the score of a category with zero findings.
	// Near-perfect rather than perfect, reflecting residual uncertainty.
	EmptyCategoryScore float64 `json:"emptyCategoryScore"`

	// DimensionWeights must sum to exactly 1.0.
	DimensionWeights map[Dimension]float64 `json:"dimensionWeights"`

	// TrustworthinessBaseline is the trustworthiness dimension score used
	// when hallucination analysis was requested but no data came back.
	// An explicit default, not an error state.
	TrustworthinessBaseline float64 `json:"trustworthinessBaseline"`

	// QuickWinMinImpact is the minimum impact for quick-win candidates.
	QuickWinMinImpact int `json:"quickWinMinImpact"`

	// QuickWinLimit caps the quick-win list.
	QuickWinLimit int `json:"quickWinLimit"`

	// RoadmapLimit caps each roadmap bucket.
	RoadmapLimit int `json:"roadmapLimit"`

	// AgentFlagThreshold is the dimension score at or above which the
	// corresponding agent-perspective capability flag is true.
	AgentFlagThreshold float64 `json:"agentFlagThreshold"`
}

// DefaultScoreConfig returns the canonical scoring constants.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		SeverityPenaltyFactor: 0.5,
		EmptyCategoryScore:    95,
		DimensionWeights: map[Dimension]float64{
			DimensionContentQuality:    0.30,
			DimensionComprehensibility: 0.25,
			DimensionExtractability:    0.20,
			DimensionDiscoverability:   0.15,
			DimensionTrustworthiness:   0.10,
		},
		TrustworthinessBaseline: 85,
		QuickWinMinImpact:       15,
		QuickWinLimit:           5,
		RoadmapLimit:            5,
		AgentFlagThreshold:      70,
	}
}

// Validate returns an error if the config is inconsistent.
func (c *ScoreConfig) Validate() error {
	var sum float64
	for _, w := range c.DimensionWeights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return Errorf(EINVALID, "dimension weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// CategoryScore is the detailed, severity-weighted score for one category.
// Computed fresh on every scoring pass; never persisted.
type CategoryScore struct {
	Category    Category         `json:"category"`
	Score       float64          `json:"score"`
	IssueCount  int              `json:"issueCount"`
	TotalImpact int              `json:"totalImpact"`
	Weight      float64          `json:"weight"`
	BySeverity  map[Severity]int `json:"bySeverity"`
}

// LegacyCategoryScores computes the fast order-independent penalty score
// for every category: 100 minus the impact sum, with the sum capped at 100.
// Categories with no findings score 100 here; the detailed formula is the
// one that encodes residual uncertainty.
func LegacyCategoryScores(issues []Issue) map[Category]int {
	sums := make(map[Category]int)
	for _, issue := range issues {
		sums[issue.Category] += issue.ImpactScore
	}

	scores := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		sum := sums[cat]
		if sum > 100 {
			sum = 100
		}
		scores[cat] = 100 - sum
	}
	return scores
}

// CategoryScores computes the severity-weighted score for every category.
// Each finding contributes impact * severityMultiplier * SeverityPenaltyFactor.
// A category with zero findings scores EmptyCategoryScore.
func CategoryScores(issues []Issue, cfg ScoreConfig) []CategoryScore {
	byCategory := make(map[Category][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	scores := make([]CategoryScore, 0, len(Categories))
	for _, cat := range Categories {
		cs := CategoryScore{
			Category:   cat,
			Weight:     cat.Weight(),
			BySeverity: make(map[Severity]int),
		}

		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			cs.Score = cfg.EmptyCategoryScore
			scores = append(scores, cs)
			continue
		}

		var penalty float64
		for _, issue := range catIssues {
			cs.IssueCount++
			cs.TotalImpact += issue.ImpactScore
			cs.BySeverity[issue.Severity]++
			penalty += float64(issue.ImpactScore) * issue.Severity.Multiplier() * cfg.SeverityPenaltyFactor
		}

		cs.Score = clampScore(100 - penalty)
		scores = append(scores, cs)
	}
	return scores
}

// penaltyScore applies the severity-weighted penalty formula over a subset
// of issues, returning empty when the subset has no findings.
func penaltyScore(issues []Issue, cfg ScoreConfig, empty float64) float64 {
	if len(issues) == 0 {
		return empty
	}
	var penalty float64
	for _, issue := range issues {
		penalty += float64(issue.ImpactScore) * issue.Severity.Multiplier() * cfg.SeverityPenaltyFactor
	}
	return clampScore(100 - penalty)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
