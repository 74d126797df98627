package agentready_test

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/fwojciec/agentready"
	"github.com/fwojciec/agentready/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueIDs(issues []agentready.Issue) []string {
	ids := make([]string, 0, len(issues))
	for _, issue := range issues {
		ids = append(ids, issue.ID)
	}
	return ids
}

func testDocument() *agentready.Document {
	return &agentready.Document{
		URL:        "https://example.com",
		RawHTML:    "<html><body><p>hello</p></body></html>",
		StatusCode: 200,
		Config:     agentready.DefaultConfig(),
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("concatenates issues from every rule", func(t *testing.T) {
		t.Parallel()

		r := agentready.NewRegistry()
		require.NoError(t, r.RegisterAll(
			newMockRule("a", agentready.CategoryReadability, 10, []agentready.Issue{
				{ID: "a", Title: "a", Category: agentready.CategoryReadability, Severity: agentready.SeverityLow, ImpactScore: 5, Confidence: 1},
			}),
			newMockRule("b", agentready.CategoryTechnical, 20, []agentready.Issue{
				{ID: "b", Title: "b", Category: agentready.CategoryTechnical, Severity: agentready.SeverityHigh, ImpactScore: 20, Confidence: 1},
			}),
			newMockRule("c", agentready.CategoryMisc, 5, nil),
		))
		r.Freeze()

		runner := agentready.NewRunner(r, nil)
		issues := runner.Run(context.Background(), testDocument())

		assert.Equal(t, []string{"b", "a"}, issueIDs(issues))
	})

	t.Run("does not deduplicate identical issues", func(t *testing.T) {
		t.Parallel()

		dup := agentready.Issue{ID: "dup", Title: "dup", Category: agentready.CategoryMisc, Severity: agentready.SeverityLow, ImpactScore: 5, Confidence: 1}

		r := agentready.NewRegistry()
		require.NoError(t, r.RegisterAll(
			newMockRule("one", agentready.CategoryMisc, 10, []agentready.Issue{dup}),
			newMockRule("two", agentready.CategoryMisc, 10, []agentready.Issue{dup}),
		))
		r.Freeze()

		runner := agentready.NewRunner(r, nil)
		issues := runner.Run(context.Background(), testDocument())

		assert.Len(t, issues, 2)
	})

	t.Run("a failing rule does not suppress other rules", func(t *testing.T) {
		t.Parallel()

		failing := &mock.Rule{
			MetadataFn: func() agentready.RuleMetadata {
				return agentready.RuleMetadata{
					ID:              "failing",
					Title:           "failing",
					Category:        agentready.CategoryMisc,
					DefaultSeverity: agentready.SeverityLow,
				}
			},
			CheckFn: func(_ context.Context, _ *agentready.Document) ([]agentready.Issue, error) {
				return nil, errors.New("boom")
			},
		}

		r := agentready.NewRegistry()
		require.NoError(t, r.RegisterAll(
			failing,
			newMockRule("ok", agentready.CategoryMisc, 10, []agentready.Issue{
				{ID: "ok", Title: "ok", Category: agentready.CategoryMisc, Severity: agentready.SeverityLow, ImpactScore: 5, Confidence: 1},
			}),
		))
		r.Freeze()

		runner := agentready.NewRunner(r, nil)
		issues := runner.Run(context.Background(), testDocument())

		assert.Equal(t, []string{"ok"}, issueIDs(issues))
	})

	t.Run("a panicking rule does not abort the run", func(t *testing.T) {
		t.Parallel()

		panicking := &mock.Rule{
			MetadataFn: func() agentready.RuleMetadata {
				return agentready.RuleMetadata{
					ID:              "panicking",
					Title:           "panicking",
					Category:        agentready.CategoryMisc,
					DefaultSeverity: agentready.SeverityLow,
				}
			},
			CheckFn: func(_ context.Context, _ *agentready.Document) ([]agentready.Issue, error) {
				panic("unexpected nil")
			},
		}

		r := agentready.NewRegistry()
		require.NoError(t, r.RegisterAll(
			panicking,
			newMockRule("ok", agentready.CategoryMisc, 10, []agentready.Issue{
				{ID: "ok", Title: "ok", Category: agentready.CategoryMisc, Severity: agentready.SeverityLow, ImpactScore: 5, Confidence: 1},
			}),
		))
		r.Freeze()

		runner := agentready.NewRunner(r, nil)
		issues := runner.Run(context.Background(), testDocument())

		assert.Equal(t, []string{"ok"}, issueIDs(issues))
	})
}

func TestRunner_Run_OrderIndependence(t *testing.T) {
	t.Parallel()

	// Registering the same rules in any order must produce the same issue
	// multiset. Registration order is the only execution-order lever callers
	// have, so shuffling it approximates permuting execution order.
	makeRules := func() []agentready.Rule {
		return []agentready.Rule{
			newMockRule("a", agentready.CategoryReadability, 30, []agentready.Issue{
				{ID: "a", Title: "a", Category: agentready.CategoryReadability, Severity: agentready.SeverityHigh, ImpactScore: 25, Confidence: 1},
			}),
			newMockRule("b", agentready.CategoryTechnical, 20, []agentready.Issue{
				{ID: "b1", Title: "b1", Category: agentready.CategoryTechnical, Severity: agentready.SeverityLow, ImpactScore: 5, Confidence: 1},
				{ID: "b2", Title: "b2", Category: agentready.CategoryTechnical, Severity: agentready.SeverityMedium, ImpactScore: 10, Confidence: 1},
			}),
			newMockRule("c", agentready.CategoryExtraction, 10, []agentready.Issue{
				{ID: "c", Title: "c", Category: agentready.CategoryExtraction, Severity: agentready.SeverityCritical, ImpactScore: 40, Confidence: 1},
			}),
		}
	}

	var baseline []string
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 10; trial++ {
		rules := makeRules()
		rng.Shuffle(len(rules), func(i, j int) { rules[i], rules[j] = rules[j], rules[i] })

		r := agentready.NewRegistry()
		require.NoError(t, r.RegisterAll(rules...))
		r.Freeze()

		runner := agentready.NewRunner(r, nil)
		ids := issueIDs(runner.Run(context.Background(), testDocument()))
		sort.Strings(ids)

		if baseline == nil {
			baseline = ids
			continue
		}
		assert.Equal(t, baseline, ids, "issue multiset should be independent of registration order")
	}
}
