package agentready

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// RuleRunner executes registered rules against a document and collects
// the resulting issues.
type RuleRunner interface {
	// Run executes every registered rule against the document.
	// The returned issues are sorted for presentation; the multiset of
	// issues is independent of execution order.
	Run(ctx context.Context, doc *Document) []Issue
}

// Ensure Runner implements RuleRunner at compile time.
var _ RuleRunner = (*Runner)(nil)

// Runner dispatches all rules concurrently over one read-only document.
//
// A rule that returns an error or panics is isolated: its failure is
// logged and treated as zero issues so one broken check cannot suppress
// the rest of the report. Issues are never deduplicated here; duplicate
// aggregation is the scoring engine's concern.
type Runner struct {
	registry *Registry
	logger   *slog.Logger
}

// NewRunner creates a Runner over the given registry.
// A nil logger falls back to slog.Default().
func NewRunner(registry *Registry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{registry: registry, logger: logger}
}

// Run executes every registered rule concurrently and concatenates their
// issues. Presentation order is rule priority descending, then impact
// descending, then issue ID.
func (r *Runner) Run(ctx context.Context, doc *Document) []Issue {
	rules := r.registry.Rules()

	type result struct {
		priority int
		issues   []Issue
	}

	results := make([]result, len(rules))

	var wg sync.WaitGroup
	for i, rule := range rules {
		wg.Add(1)
		go func() {
			defer wg.Done()
			issues := r.check(ctx, rule, doc)
			results[i] = result{priority: rule.Metadata().Priority, issues: issues}
		}()
	}
	wg.Wait()

	var all []Issue
	priorities := make(map[string]int)
	for _, res := range results {
		for _, issue := range res.issues {
			priorities[issue.ID] = res.priority
			all = append(all, issue)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		pi, pj := priorities[all[i].ID], priorities[all[j].ID]
		if pi != pj {
			return pi > pj
		}
		if all[i].ImpactScore != all[j].ImpactScore {
			return all[i].ImpactScore > all[j].ImpactScore
		}
		return all[i].ID < all[j].ID
	})

	return all
}

// check runs one rule with panic recovery and error isolation.
func (r *Runner) check(ctx context.Context, rule Rule, doc *Document) (issues []Issue) {
	meta := rule.Metadata()

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("rule panicked",
				"rule", meta.ID,
				"panic", fmt.Sprint(rec),
			)
			issues = nil
		}
	}()

	issues, err := rule.Check(ctx, doc)
	if err != nil {
		r.logger.Warn("rule failed",
			"rule", meta.ID,
			"error", err,
		)
		return nil
	}

	return issues
}
