package goquery

import "github.com/fwojciec/agentready"

// Rules returns every built-in rule.
func Rules() []agentready.Rule {
	var rules []agentready.Rule
	rules = append(rules, metaRules()...)
	rules = append(rules, headingRules()...)
	rules = append(rules, semanticRules()...)
	rules = append(rules, contentRules()...)
	rules = append(rules, technicalRules()...)
	rules = append(rules, structuredRules()...)
	rules = append(rules, accessRules()...)
	rules = append(rules, trustRules()...)
	rules = append(rules, chunkingRules()...)
	return rules
}

// NewRegistry returns a frozen registry holding every built-in rule.
func NewRegistry() (*agentready.Registry, error) {
	registry := agentready.NewRegistry()
	if err := registry.RegisterAll(Rules()...); err != nil {
		return nil, err
	}
	registry.Freeze()
	return registry, nil
}
