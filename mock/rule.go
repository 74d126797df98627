package mock

import (
	"context"

	"github.com/fwojciec/agentready"
)

var _ agentready.Rule = (*Rule)(nil)

// Rule is a mock implementation of agentready.Rule.
type Rule struct {
	MetadataFn func() agentready.RuleMetadata
	CheckFn    func(ctx context.Context, doc *agentready.Document) ([]agentready.Issue, error)
}

func (r *Rule) Metadata() agentready.RuleMetadata {
	return r.MetadataFn()
}

func (r *Rule) Check(ctx context.Context, doc *agentready.Document) ([]agentready.Issue, error) {
	return r.CheckFn(ctx, doc)
}
