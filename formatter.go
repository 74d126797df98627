package agentready

import (
	"fmt"
	"strings"
)

// FormatIssues formats issues for terminal display.
// Issues are grouped under severity headers in descending severity order;
// severities with no issues are omitted.
func FormatIssues(issues []Issue) string {
	if len(issues) == 0 {
		return "No issues found."
	}

	bySeverity := make(map[Severity][]Issue)
	for _, issue := range issues {
		bySeverity[issue.Severity] = append(bySeverity[issue.Severity], issue)
	}

	var parts []string
	for i := len(Severities) - 1; i >= 0; i-- {
		sev := Severities[i]
		group := bySeverity[sev]
		if len(group) == 0 {
			continue
		}

		var sb strings.Builder
		sb.WriteString(strings.ToUpper(string(sev)) + " (" + fmt.Sprint(len(group)) + ")")
		for _, issue := range group {
			sb.WriteString(fmt.Sprintf("\n  [%s] %s (impact %d)", issue.Category, issue.Title, issue.ImpactScore))
			if issue.Remediation != "" {
				sb.WriteString("\n      fix: " + issue.Remediation)
			}
		}
		parts = append(parts, sb.String())
	}

	return strings.Join(parts, "\n\n")
}

// FormatScoring formats the readiness result as a short terminal summary.
func FormatScoring(result *ScoringResult) string {
	if result == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall: %.1f (%s), better than %d%% of audited pages\n", result.OverallScore, result.Grade, result.Percentile)
	for _, dim := range result.Dimensions {
		fmt.Fprintf(&sb, "  %-18s %5.1f  %s\n", dim.Dimension, dim.Score, dim.Status)
	}
	return sb.String()
}
