package main

import (
	"fmt"

	"github.com/fwojciec/agentready"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := agentready.ScanSummaryFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	summaries, err := deps.History.FindScanSummaries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", agentready.ErrorMessage(err))
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(deps.Stdout, "No scans recorded. Use 'agentready scan' to audit a page.")
		return nil
	}

	for _, s := range summaries {
		fmt.Fprintf(deps.Stdout, "%s  %5.1f %-2s  %2d issue(s)  %s\n",
			s.ScannedAt.Format("2006-01-02 15:04"), s.OverallScore, s.Grade, s.IssueCount, s.URL)
	}

	return nil
}
