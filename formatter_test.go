package agentready_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/agentready"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIssues(t *testing.T) {
	t.Parallel()

	t.Run("reports no issues", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "No issues found.", agentready.FormatIssues(nil))
	})

	t.Run("groups by severity in descending order", func(t *testing.T) {
		t.Parallel()

		issues := []agentready.Issue{
			{ID: "a", Title: "Low thing", Category: agentready.CategoryMisc, Severity: agentready.SeverityLow, ImpactScore: 5, Confidence: 1},
			{ID: "b", Title: "Critical thing", Category: agentready.CategoryTechnical, Severity: agentready.SeverityCritical, ImpactScore: 40, Confidence: 1},
		}

		out := agentready.FormatIssues(issues)

		assert.Less(t, strings.Index(out, "CRITICAL"), strings.Index(out, "LOW"))
		assert.Contains(t, out, "[technical] Critical thing (impact 40)")
	})

	t.Run("includes remediation when present", func(t *testing.T) {
		t.Parallel()

		issues := []agentready.Issue{
			{ID: "a", Title: "Missing title", Remediation: "Add a title element.", Category: agentready.CategoryCrawlability, Severity: agentready.SeverityHigh, ImpactScore: 20, Confidence: 1},
		}

		out := agentready.FormatIssues(issues)
		assert.Contains(t, out, "fix: Add a title element.")
	})
}

func TestFormatScoring(t *testing.T) {
	t.Parallel()

	result, err := agentready.Score(agentready.ScoreInput{}, agentready.DefaultScoreConfig())
	require.NoError(t, err)

	out := agentready.FormatScoring(result)

	assert.Contains(t, out, "Overall: 95.0 (A)")
	assert.Contains(t, out, "content-quality")
	assert.Empty(t, agentready.FormatScoring(nil))
}
