package mock

import (
	"context"

	"github.com/fwojciec/agentready"
)

var _ agentready.RuleRunner = (*RuleRunner)(nil)

// RuleRunner is a mock implementation of agentready.RuleRunner.
type RuleRunner struct {
	RunFn func(ctx context.Context, doc *agentready.Document) []agentready.Issue
}

func (r *RuleRunner) Run(ctx context.Context, doc *agentready.Document) []agentready.Issue {
	return r.RunFn(ctx, doc)
}
