package main

import (
	"fmt"
	"sort"
)

// Run executes the rules command.
func (c *RulesCmd) Run(deps *Dependencies) error {
	rules := deps.Rules
	sort.Slice(rules, func(i, j int) bool {
		mi, mj := rules[i].Metadata(), rules[j].Metadata()
		if mi.Category != mj.Category {
			return mi.Category < mj.Category
		}
		return mi.ID < mj.ID
	})

	var category string
	for _, rule := range rules {
		meta := rule.Metadata()
		if string(meta.Category) != category {
			category = string(meta.Category)
			fmt.Fprintf(deps.Stdout, "\n%s\n", category)
		}
		fmt.Fprintf(deps.Stdout, "  %-26s %-8s  %s\n", meta.ID, meta.DefaultSeverity, meta.Title)
	}

	return nil
}
