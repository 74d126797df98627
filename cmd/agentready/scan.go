package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/agentready"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	result, err := deps.Scanner.Scan(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", agentready.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(deps.Stdout, "Scanned %s\n\n", result.URL)
	fmt.Fprintln(deps.Stdout, agentready.FormatScoring(result.Scoring))
	fmt.Fprintln(deps.Stdout, agentready.FormatIssues(result.Issues))

	if len(result.Scoring.QuickWins) > 0 {
		fmt.Fprintln(deps.Stdout, "\nQuick wins:")
		for _, win := range result.Scoring.QuickWins {
			fmt.Fprintf(deps.Stdout, "  - %s (impact %d, %s effort)\n", win.Title, win.ImpactScore, win.Effort)
		}
	}

	if result.Chunking != nil {
		fmt.Fprintf(deps.Stdout, "\nChunking: %d chunks (%s), %d tokens, %d oversized\n",
			result.Chunking.TotalChunks, result.Chunking.Strategy,
			result.Chunking.TotalTokens, result.Chunking.OversizedCount)
	}
	if result.Extractability != nil {
		fmt.Fprintf(deps.Stdout, "Extractability: %d/100 over %d sampled nodes\n",
			result.Extractability.ExtractabilityScore, result.Extractability.TotalNodes)
	}
	if result.LLM != nil {
		fmt.Fprintf(deps.Stdout, "\nSummary (%s): %s\n", result.LLM.Model, result.LLM.Summary)
	}

	return nil
}
